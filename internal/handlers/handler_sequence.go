package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
)

type sequenceHandler struct {
	sequences portssvc.SequenceSvcFacade
}

func newSequenceHandler(sequences portssvc.SequenceSvcFacade) *sequenceHandler {
	return &sequenceHandler{sequences: sequences}
}

// getSequence godoc
// @Summary Show the entry number counter
// @Description Returns the last issued number and a non-reserving preview of the next entry number.
// @Tags sequence
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Success 200 {object} dto.SequenceStatusResponse
// @Router /owners/{owner_id}/sequence [get]
func (h *sequenceHandler) getSequence(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := c.Param("owner_id")

	current, err := h.sequences.Current(ctx, ownerID)
	if err != nil {
		respondError(c, err, "Failed to read sequence")
		return
	}
	preview, err := h.sequences.PreviewNext(ctx, ownerID)
	if err != nil {
		respondError(c, err, "Failed to read sequence")
		return
	}
	c.JSON(http.StatusOK, dto.SequenceStatusResponse{Current: current, NextPreview: preview})
}

// reserveSequences godoc
// @Summary Reserve a block of entry numbers
// @Tags sequence
// @Accept  json
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   reservation body dto.ReserveSequencesRequest true "Block size (1-250)"
// @Success 201 {object} dto.ReserveSequencesResponse
// @Failure 400 {object} map[string]string
// @Router /owners/{owner_id}/sequence/reserve [post]
func (h *sequenceHandler) reserveSequences(c *gin.Context) {
	var req dto.ReserveSequencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ReserveSequencesRequest")
		return
	}
	ownerID := c.Param("owner_id")
	numbers, err := h.sequences.ReserveBlock(c.Request.Context(), ownerID, req.Count)
	if err != nil {
		respondError(c, err, "Failed to reserve sequence numbers")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Reserved sequence block",
		slog.String("owner_id", ownerID), slog.Int("count", len(numbers)))
	c.JSON(http.StatusCreated, dto.ToReserveSequencesResponse(numbers))
}

// RegisterSequenceRoutes registers counter routes under an owner-scoped group.
func RegisterSequenceRoutes(owner *gin.RouterGroup, sequences portssvc.SequenceSvcFacade) {
	h := newSequenceHandler(sequences)
	seq := owner.Group("/sequence")
	{
		seq.GET("", h.getSequence)
		seq.POST("/reserve", h.reserveSequences)
	}
}
