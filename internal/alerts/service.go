package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/stockpilot/wms-backend/internal/inventory"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

// StockAlertEvent is the payload published for one reconciliation warning.
type StockAlertEvent struct {
	BatchID    string    `json:"batch_id"`
	MSKU       string    `json:"msku"`
	Severity   string    `json:"severity"`
	Stock      int       `json:"stock"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// sender is the minimal publish surface, kept narrow for testing.
type sender interface {
	send(ctx context.Context, data []byte, attrs map[string]string) error
}

// Service publishes stock warnings after reconciliation. Publishing is
// best-effort: failures are logged and never abort the run.
type Service interface {
	PublishWarnings(ctx context.Context, batchID string, warnings []inventory.Warning)
}

type service struct {
	sender sender
	logg   *logger.Logger
}

// NewService wires an alert service over a Pub/Sub publisher.
func NewService(publisher *pubsub.Publisher, logg *logger.Logger) (Service, error) {
	if publisher == nil {
		return nil, fmt.Errorf("pubsub publisher required")
	}
	return &service{sender: &pubsubSender{publisher: publisher}, logg: logg}, nil
}

func (s *service) PublishWarnings(ctx context.Context, batchID string, warnings []inventory.Warning) {
	for _, warning := range warnings {
		event := StockAlertEvent{
			BatchID:    batchID,
			MSKU:       warning.MSKU,
			Severity:   warning.Severity.String(),
			Stock:      warning.Stock,
			Message:    warning.Message,
			OccurredAt: time.Now().UTC(),
		}

		data, err := json.Marshal(event)
		if err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "marshaling stock alert", err)
			}
			continue
		}

		attrs := map[string]string{
			"batch_id": batchID,
			"severity": event.Severity,
		}
		if err := s.sender.send(ctx, data, attrs); err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "publishing stock alert", err)
			}
		}
	}
}

type pubsubSender struct {
	publisher *pubsub.Publisher
}

func (p *pubsubSender) send(ctx context.Context, data []byte, attrs map[string]string) error {
	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})
	_, err := result.Get(ctx)
	return err
}
