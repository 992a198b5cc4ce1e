package api

import (
	"context"
	"net/http"
	"strings"

	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/models"
	"trading-journal-go/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log     *zap.Logger
	methods *journal.MethodService
	trades  *journal.TradeService
	stats   *journal.StatsService
	db      Pinger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, methods *journal.MethodService, trades *journal.TradeService, stats *journal.StatsService, db Pinger) *APIHandler {
	return &APIHandler{
		log:     log.Named("api"),
		methods: methods,
		trades:  trades,
		stats:   stats,
		db:      db,
	}
}

// Health reports liveness and database reachability.
func (h *APIHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		fail(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}

// --- methods ----------------------------------------------------------------

func (h *APIHandler) ListMethods(c *gin.Context) {
	methods, err := h.methods.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, methods)
}

func (h *APIHandler) GetMethod(c *gin.Context) {
	method, err := h.methods.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, method)
}

func (h *APIHandler) CreateMethod(c *gin.Context) {
	var in journal.MethodInput
	if !h.bindJSON(c, &in) {
		return
	}
	method, err := h.methods.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, method)
}

func (h *APIHandler) UpdateMethod(c *gin.Context) {
	var in journal.MethodInput
	if !h.bindJSON(c, &in) {
		return
	}
	method, err := h.methods.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, method)
}

func (h *APIHandler) DeleteMethod(c *gin.Context) {
	if err := h.methods.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "deleted"})
}

// --- trades -----------------------------------------------------------------

func (h *APIHandler) ListTrades(c *gin.Context) {
	filter, err := h.tradeFilter(c)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	trades, err := h.trades.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, trades)
}

func (h *APIHandler) GetTrade(c *gin.Context) {
	id, valid := h.tradeID(c)
	if !valid {
		return
	}
	trade, err := h.trades.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, trade)
}

func (h *APIHandler) CreateTrade(c *gin.Context) {
	var in journal.TradeInput
	if !h.bindJSON(c, &in) {
		return
	}
	trade, err := h.trades.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusCreated, trade)
}

func (h *APIHandler) UpdateTrade(c *gin.Context) {
	id, valid := h.tradeID(c)
	if !valid {
		return
	}
	var in journal.TradeInput
	if !h.bindJSON(c, &in) {
		return
	}
	trade, err := h.trades.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, trade)
}

func (h *APIHandler) DeleteTrade(c *gin.Context) {
	id, valid := h.tradeID(c)
	if !valid {
		return
	}
	if err := h.trades.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "deleted"})
}

// --- stats ------------------------------------------------------------------

func (h *APIHandler) GetStats(c *gin.Context) {
	r, err := journal.ParseDateRange(c.Query("startDate"), c.Query("endDate"), h.stats.Location())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	stats, err := h.stats.GetStats(c.Request.Context(), r)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, stats)
}

// RecentTrades returns the newest trades; limit defaults to the configured value.
func (h *APIHandler) RecentTrades(c *gin.Context) {
	trades, err := h.stats.Recent(c.Request.Context(), cast.ToInt(c.Query("limit")))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	ok(c, http.StatusOK, trades)
}

// --- helpers ----------------------------------------------------------------

func (h *APIHandler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *APIHandler) tradeID(c *gin.Context) (uint, bool) {
	id, err := cast.ToUintE(c.Param("id"))
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, "invalid trade id")
		return 0, false
	}
	return id, true
}

func (h *APIHandler) tradeFilter(c *gin.Context) (repository.TradeFilter, error) {
	filter := repository.TradeFilter{
		Symbol:   strings.TrimSpace(c.Query("symbol")),
		MethodID: strings.TrimSpace(c.Query("methodId")),
		Result:   models.Result(strings.TrimSpace(c.Query("result"))),
	}
	switch filter.Result {
	case models.ResultNone, models.ResultWin, models.ResultLoss, models.ResultBreakeven:
	default:
		return filter, &journal.ValidationError{Field: "result", Message: "must be one of [win loss breakeven]"}
	}

	r, err := journal.ParseDateRange(c.Query("startDate"), c.Query("endDate"), h.stats.Location())
	if err != nil {
		return filter, err
	}
	filter.StartDate, filter.EndDate = r.Start, r.End
	return filter, nil
}
