package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"payequity/internal/report/models"
	dErrors "payequity/pkg/domain-errors"
	"payequity/pkg/platform/httputil"
	"payequity/pkg/requestcontext"
)

// Service defines the interface for report operations.
type Service interface {
	Submit(ctx context.Context, req models.SubmitRequest) (*models.Report, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Report, error)
	List(ctx context.Context, jurisdiction string) ([]*models.Report, error)
}

// Handler wires report endpoints to the report service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a report handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts report endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/reports", h.HandleSubmit)
	r.Get("/v1/reports", h.HandleList)
	r.Get("/v1/reports/{id}", h.HandleGet)
}

// HandleSubmit handles POST /v1/reports.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.Submit(ctx, req.ToModel())
	if err != nil {
		h.logError(ctx, "report submission failed", err,
			"request_id", requestID,
			"jurisdiction", req.Jurisdiction,
			"report_year", req.ReportYear,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report submitted",
		"request_id", requestID,
		"report_id", report.ID,
		"outcome", report.Outcome(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	w.Header().Set("Location", "/v1/reports/"+report.ID.String())
	httputil.WriteJSON(w, http.StatusCreated, FromReport(report))
}

// HandleGet handles GET /v1/reports/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid report id"))
		return
	}

	report, err := h.service.Get(ctx, id)
	if err != nil {
		h.logError(ctx, "report lookup failed", err,
			"request_id", requestID,
			"report_id", id,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}

// HandleList handles GET /v1/reports?jurisdiction=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	jurisdiction := r.URL.Query().Get("jurisdiction")

	reports, err := h.service.List(ctx, jurisdiction)
	if err != nil {
		h.logError(ctx, "report listing failed", err,
			"request_id", requestID,
			"jurisdiction", jurisdiction,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromReports(jurisdiction, reports))
}

// logError logs client errors at warn and everything else at error.
func (h *Handler) logError(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
