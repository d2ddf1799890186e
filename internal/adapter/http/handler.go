// Package httpadapter exposes the engine to the game client overlay:
// snapshots come in, suggestions and read views go out.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"runemind/internal/app/engine"
	"runemind/internal/app/ports"
	"runemind/internal/app/recall"
	"runemind/internal/app/status"
	"runemind/internal/domain/game"
)

const defaultKnowledgeLimit = 5

// CycleRunner is the slice of the engine the snapshot route drives.
type CycleRunner interface {
	Cycle(ctx context.Context, snap engine.Snapshot) (engine.CycleResult, error)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

// Handler owns the HTTP surface. Engine runs cycles; StatusUC and
// RecallUC serve the read side; Knowledge answers free-text lookups.
type Handler struct {
	Engine    CycleRunner
	StatusUC  status.UseCase
	RecallUC  recall.UseCase
	Knowledge ports.KnowledgeBase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	agent := s.Group("/api/agent")
	agent.POST("/snapshot", h.snapshot)
	agent.GET("/status", h.status)
	agent.GET("/journal", h.journal)

	s.GET("/api/knowledge", h.knowledge)
	s.GET("/healthz", h.health)
	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) snapshot(c context.Context, ctx *app.RequestContext) {
	var snap engine.Snapshot
	if err := decodeJSON(ctx, &snap); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	res, err := h.Engine.Cycle(c, snap)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, res)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.StatusUC.Execute(c))
}

type journalResponse struct {
	Records []game.MemoryRecord `json:"records"`
}

func (h Handler) journal(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.RecallUC.Execute(c, recall.Request{
		Kind:  string(ctx.Query("kind")),
		Limit: limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, journalResponse{Records: resp.Records})
}

type knowledgeResponse struct {
	Hits []ports.KnowledgeHit `json:"hits"`
}

func (h Handler) knowledge(c context.Context, ctx *app.RequestContext) {
	q := strings.TrimSpace(string(ctx.Query("q")))
	if q == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_query", "q is required")
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	if limit <= 0 {
		limit = defaultKnowledgeLimit
	}

	hits, err := h.Knowledge.Query(c, q, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, knowledgeResponse{Hits: hits})
}

func (h Handler) health(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, recall.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, game.ErrUnknownCategory):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_category", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
