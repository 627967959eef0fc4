package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/northbank/supporters-api/internal/usecase"
)

type triggerSyncRequest struct {
	Phases []string `json:"phases" validate:"omitempty,dive,oneof=competitions fixtures results standings details"`
	Season int      `json:"season" validate:"omitempty,gte=2000,lte=2100"`
}

type triggerSyncResponse struct {
	Status string   `json:"status"`
	Phases []string `json:"phases,omitempty"`
	Season int      `json:"season,omitempty"`
}

// TriggerSync starts a sync run in the background. The response is 202
// once the run is accepted; a run already in flight yields 409.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerSync")
	defer span.End()

	var req triggerSyncRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body", usecase.ErrInvalidInput))
		return
	}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: malformed JSON body", usecase.ErrInvalidInput))
			return
		}
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	opts := usecase.SyncOptions{Season: req.Season}
	for _, raw := range req.Phases {
		phase, err := usecase.ParseSyncPhase(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		opts.Phases = append(opts.Phases, phase)
	}

	if h.syncService.Running() {
		writeError(ctx, w, usecase.ErrSyncAlreadyRunning)
		return
	}

	go func() {
		runCtx := context.WithoutCancel(ctx)
		if _, err := h.syncService.Run(runCtx, opts); err != nil {
			if errors.Is(err, usecase.ErrSyncAlreadyRunning) {
				h.logger.WarnContext(runCtx, "sync run skipped, another run in progress")
				return
			}
			h.logger.ErrorContext(runCtx, "triggered sync run failed", "error", err)
		}
	}()

	writeSuccess(ctx, w, http.StatusAccepted, triggerSyncResponse{
		Status: "accepted",
		Phases: req.Phases,
		Season: req.Season,
	})
}
