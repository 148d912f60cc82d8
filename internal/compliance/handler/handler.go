package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payequity/internal/compliance"
	"payequity/pkg/platform/httputil"
	"payequity/pkg/requestcontext"
)

// Service defines the interface for compliance analysis.
type Service interface {
	Analyze(ctx context.Context, jobs []compliance.JobClass) (*compliance.Verdict, error)
}

// Handler wires the stateless analysis endpoint to the compliance service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/compliance/analyze", h.HandleAnalyze)
}

// HandleAnalyze handles POST /v1/compliance/analyze requests.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	verdict, err := h.service.Analyze(ctx, req.Jobs)
	if err != nil {
		h.logger.WarnContext(ctx, "compliance analysis rejected",
			"request_id", requestID,
			"jurisdiction", req.Jurisdiction,
			"job_classes", len(req.Jobs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "compliance analyzed",
		"request_id", requestID,
		"jurisdiction", req.Jurisdiction,
		"job_classes", len(req.Jobs),
		"outcome", verdict.Outcome(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromVerdict(req, verdict, requestcontext.Now(ctx)))
}
