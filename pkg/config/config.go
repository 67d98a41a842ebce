package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "wms"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "WMS_DB_DSN"
	EnvDBHost = "WMS_DB_HOST"
	EnvDBUser = "WMS_DB_USER"
	EnvDBName = "WMS_DB_NAME"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	Ingest       IngestConfig
	Dashboard    DashboardConfig
	Reconcile    ReconcileConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WMS_APP_ENV" required:"true"`
	Port         string `envconfig:"WMS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WMS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WMS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WMS_DB_DSN"`
	Driver string `envconfig:"WMS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WMS_DB_HOST"`
	LegacyPort     int    `envconfig:"WMS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WMS_DB_USER"`
	LegacyPassword string `envconfig:"WMS_DB_PASSWORD"`
	LegacyName     string `envconfig:"WMS_DB_NAME"`
	LegacySSLMode  string `envconfig:"WMS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WMS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WMS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WMS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WMS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded sqlite one.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"WMS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WMS_REDIS_ADDR"`
	Password     string        `envconfig:"WMS_REDIS_PASSWORD"`
	DB           int           `envconfig:"WMS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WMS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WMS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WMS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WMS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WMS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig points at the master workbook the seed command loads.
type CatalogConfig struct {
	WorkbookPath   string `envconfig:"WMS_CATALOG_WORKBOOK" default:"WMS-04-02.xlsx"`
	MappingSheet   string `envconfig:"WMS_CATALOG_MAPPING_SHEET" default:"Msku With Skus"`
	ComboSheet     string `envconfig:"WMS_CATALOG_COMBO_SHEET" default:"Combos skus"`
	InventorySheet string `envconfig:"WMS_CATALOG_INVENTORY_SHEET" default:"Current Inventory "`
}

type IngestConfig struct {
	MaxUploadMB int    `envconfig:"WMS_MAX_UPLOAD_MB" default:"50"`
	ReportsDir  string `envconfig:"WMS_REPORTS_DIR" default:"reports"`
}

type DashboardConfig struct {
	CacheTTL time.Duration `envconfig:"WMS_DASHBOARD_CACHE_TTL" default:"30s"`
}

// ReconcileConfig tunes the per-batch reconciliation lock.
type ReconcileConfig struct {
	LockTTL time.Duration `envconfig:"WMS_RECONCILE_LOCK_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WMS_AUTO_MIGRATE" default:"false"`
	StockAlerts bool `envconfig:"WMS_FEATURE_STOCK_ALERTS" default:"false"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"WMS_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"WMS_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	StockAlertsTopic string `envconfig:"WMS_PUBSUB_STOCK_ALERTS_TOPIC" default:"wms-stock-alerts"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	// sqlite needs only a file path.
	if db.IsSQLite() {
		db.DSN = "wms.db"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
