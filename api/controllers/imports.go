package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/stockpilot/wms-backend/api/responses"
	"github.com/stockpilot/wms-backend/internal/imports"
	"github.com/stockpilot/wms-backend/pkg/config"
	pkgerrors "github.com/stockpilot/wms-backend/pkg/errors"
	"github.com/stockpilot/wms-backend/pkg/logger"
)

// ImportSalesFiles accepts one or more sales export files as multipart
// uploads and processes each through the import pipeline. A structurally
// broken file yields a Failed report entry, not a failed request.
func ImportSalesFiles(svc imports.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
			return
		}

		maxBytes := int64(cfg.Ingest.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart upload"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		files := uploadedFiles(r)
		if len(files) == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "no files uploaded").WithDetails(map[string]any{"field": "files"}))
			return
		}

		reports := make([]*imports.FileReport, 0, len(files))
		for _, header := range files {
			report, err := processUpload(r, svc, header)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			reports = append(reports, report)
		}

		responses.WriteSuccess(w, map[string]any{
			"files": reports,
			"count": len(reports),
		})
	}
}

func processUpload(r *http.Request, svc imports.Service, header *multipart.FileHeader) (*imports.FileReport, error) {
	file, err := header.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable upload")
	}
	defer file.Close()
	return svc.ProcessFile(r.Context(), header.Filename, file)
}

// uploadedFiles accepts both the plural "files" field and a single "file".
func uploadedFiles(r *http.Request) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if headers := r.MultipartForm.File["files"]; len(headers) > 0 {
		return headers
	}
	return r.MultipartForm.File["file"]
}
