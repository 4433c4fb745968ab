package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	posting  portssvc.PostingSvc
	reversal portssvc.ReversalSvc
	query    portssvc.JournalQuerySvc
	posthog  *utils.PosthogClientWrapper
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(posting portssvc.PostingSvc, reversal portssvc.ReversalSvc, query portssvc.JournalQuerySvc, posthog *utils.PosthogClientWrapper) *journalHandler {
	return &journalHandler{
		posting:  posting,
		reversal: reversal,
		query:    query,
		posthog:  posthog,
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Posts a template-driven or explicit-line entry. The entry is numbered and persisted atomically.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   entry body dto.PostEntryRequest true "Entry to post"
// @Success 201 {object} domain.PostingResult
// @Failure 400 {object} domain.PostingResult "Validation failed or entry unbalanced"
// @Failure 422 {object} domain.PostingResult "Date falls in a locked period"
// @Failure 500 {object} domain.PostingResult
// @Router /owners/{owner_id}/entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("owner_id")

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "PostEntryRequest")
		return
	}
	postingReq, err := req.ToPostingRequest(ownerID, callerID(c))
	if err != nil {
		bindError(c, err, "PostEntryRequest")
		return
	}

	result := h.posting.Post(c.Request.Context(), postingReq)
	if !result.Success {
		status := statusFor(result.Err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to post journal entry", slog.String("error", result.Error))
			result.Error = "Failed to post journal entry"
		}
		c.JSON(status, result)
		return
	}

	middleware.PosthogEvent(c, h.posthog, "journal_entry_posted", map[string]any{
		"owner_id":      ownerID,
		"template_kind": string(req.TemplateKind),
		"source_type":   string(req.Source.Type),
	})
	c.JSON(http.StatusCreated, result)
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /owners/{owner_id}/entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.query.GetEntry(c.Request.Context(), c.Param("owner_id"), c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Cursor-paginated listing. Pass nextToken from the previous page to continue.
// @Tags journal-entries
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   status query string false "POSTED or REVERSED"
// @Param   sourceType query string false "Source type"
// @Param   dateFrom query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   dateTo query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   order query string false "date_desc (default), date_asc, sequence_desc or sequence_asc"
// @Param   limit query int false "Page size (default 100, max 500)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string
// @Router /owners/{owner_id}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListEntriesParams")
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		bindError(c, err, "ListEntriesParams")
		return
	}

	page, err := h.query.ListEntries(c.Request.Context(), c.Param("owner_id"), filter, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(page.Entries),
		NextToken: page.NextToken,
	})
}

// countEntries godoc
// @Summary Count journal entries
// @Tags journal-entries
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   status query string false "POSTED or REVERSED"
// @Success 200 {object} dto.CountResponse
// @Router /owners/{owner_id}/entries/count [get]
func (h *journalHandler) countEntries(c *gin.Context) {
	var params dto.CountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "CountParams")
		return
	}
	var status *domain.JournalStatus
	if params.Status != "" {
		status = &params.Status
	}
	n, err := h.query.CountEntriesByStatus(c.Request.Context(), c.Param("owner_id"), status)
	if err != nil {
		respondError(c, err, "Failed to count journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

// getEntriesBySource godoc
// @Summary List entries for a source document
// @Tags journal-entries
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   source_type path string true "Source type"
// @Param   document_id path string true "Source document ID"
// @Param   includeReversed query bool false "Include reversed and reversal entries"
// @Success 200 {array} dto.JournalEntryResponse
// @Router /owners/{owner_id}/sources/{source_type}/{document_id}/entries [get]
func (h *journalHandler) getEntriesBySource(c *gin.Context) {
	var params dto.LookupParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "LookupParams")
		return
	}
	entries, err := h.query.GetEntriesBySource(c.Request.Context(), c.Param("owner_id"),
		domain.SourceType(c.Param("source_type")), c.Param("document_id"), params.IncludeReversed)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// countEntriesBySource godoc
// @Summary Count entries for a source document
// @Tags journal-entries
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   source_type path string true "Source type"
// @Param   document_id path string true "Source document ID"
// @Success 200 {object} dto.CountResponse
// @Router /owners/{owner_id}/sources/{source_type}/{document_id}/entries/count [get]
func (h *journalHandler) countEntriesBySource(c *gin.Context) {
	n, err := h.query.CountEntriesBySource(c.Request.Context(), c.Param("owner_id"),
		domain.SourceType(c.Param("source_type")), c.Param("document_id"))
	if err != nil {
		respondError(c, err, "Failed to count journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

// getEntriesByTransaction godoc
// @Summary List entries for a business transaction
// @Tags journal-entries
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   transaction_id path string true "Business transaction ID"
// @Param   includeReversed query bool false "Include reversed and reversal entries"
// @Success 200 {array} dto.JournalEntryResponse
// @Router /owners/{owner_id}/transactions/{transaction_id}/entries [get]
func (h *journalHandler) getEntriesByTransaction(c *gin.Context) {
	var params dto.LookupParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "LookupParams")
		return
	}
	entries, err := h.query.GetEntriesByTransactionID(c.Request.Context(), c.Param("owner_id"),
		c.Param("transaction_id"), params.IncludeReversed)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Posts a mirror-image entry dated today and marks the original REVERSED.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   entry_id path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reason and type"
// @Success 201 {object} domain.ReversalResult
// @Failure 400 {object} domain.ReversalResult "Already reversed or a reversal entry"
// @Failure 404 {object} domain.ReversalResult
// @Failure 409 {object} domain.ReversalResult "Lost a concurrent reversal"
// @Failure 422 {object} domain.ReversalResult "Locked period"
// @Router /owners/{owner_id}/entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Param("owner_id")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ReverseEntryRequest")
		return
	}

	result := h.reversal.Reverse(c.Request.Context(), domain.ReversalRequest{
		OwnerID:      ownerID,
		EntryID:      c.Param("entry_id"),
		Reason:       req.Reason,
		ReversalType: req.ReversalType,
		RequestedBy:  callerID(c),
	})
	if !result.Success {
		status := statusFor(result.Err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to reverse journal entry", slog.String("error", result.Error))
			result.Error = "Failed to reverse journal entry"
		}
		c.JSON(status, result)
		return
	}

	middleware.PosthogEvent(c, h.posthog, "journal_entry_reversed", map[string]any{
		"owner_id":      ownerID,
		"reversal_type": string(req.ReversalType),
	})
	c.JSON(http.StatusCreated, result)
}

// reverseBySource godoc
// @Summary Reverse every posted entry of a source document
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   source_type path string true "Source type"
// @Param   document_id path string true "Source document ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reason and type"
// @Success 200 {object} dto.BulkReversalResponse
// @Router /owners/{owner_id}/sources/{source_type}/{document_id}/reverse [post]
func (h *journalHandler) reverseBySource(c *gin.Context) {
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ReverseEntryRequest")
		return
	}
	results, err := h.reversal.ReverseBySource(c.Request.Context(), c.Param("owner_id"),
		domain.SourceType(c.Param("source_type")), c.Param("document_id"),
		req.Reason, req.ReversalType, callerID(c))
	if err != nil {
		respondError(c, err, "Failed to reverse journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkReversalResponse(results))
}

// reverseByTransaction godoc
// @Summary Reverse every posted entry of a business transaction
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   transaction_id path string true "Business transaction ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reason and type"
// @Success 200 {object} dto.BulkReversalResponse
// @Router /owners/{owner_id}/transactions/{transaction_id}/reverse [post]
func (h *journalHandler) reverseByTransaction(c *gin.Context) {
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ReverseEntryRequest")
		return
	}
	results, err := h.reversal.ReverseByTransactionID(c.Request.Context(), c.Param("owner_id"),
		c.Param("transaction_id"), req.Reason, req.ReversalType, callerID(c))
	if err != nil {
		respondError(c, err, "Failed to reverse journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkReversalResponse(results))
}

// RegisterJournalRoutes registers journal entry routes under an owner-scoped group.
// writeLimiter may be nil to disable rate limiting on writes.
func RegisterJournalRoutes(owner *gin.RouterGroup, services *portssvc.ServiceContainer, writeLimiter *limiter.Limiter, posthog *utils.PosthogClientWrapper) {
	h := newJournalHandler(services.Posting, services.Reversal, services.Query, posthog)

	writes := []gin.HandlerFunc{}
	if writeLimiter != nil {
		writes = append(writes, middleware.RateLimit(writeLimiter))
	}
	withWrites := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writes...), handler)
	}

	entries := owner.Group("/entries")
	{
		entries.POST("", withWrites(h.postEntry)...)
		entries.GET("", h.listEntries)
		entries.GET("/count", h.countEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/reverse", withWrites(h.reverseEntry)...)
	}

	sources := owner.Group("/sources/:source_type/:document_id")
	{
		sources.GET("/entries", h.getEntriesBySource)
		sources.GET("/entries/count", h.countEntriesBySource)
		sources.POST("/reverse", withWrites(h.reverseBySource)...)
	}

	transactions := owner.Group("/transactions/:transaction_id")
	{
		transactions.GET("/entries", h.getEntriesByTransaction)
		transactions.POST("/reverse", withWrites(h.reverseByTransaction)...)
	}
}
