package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

type lockDateHandler struct {
	lockDates portssvc.LockDateSvcFacade
}

func newLockDateHandler(lockDates portssvc.LockDateSvcFacade) *lockDateHandler {
	return &lockDateHandler{lockDates: lockDates}
}

// getLockDate godoc
// @Summary Get the period lock date
// @Tags lock-date
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Success 200 {object} dto.LockDateResponse
// @Router /owners/{owner_id}/lock-date [get]
func (h *lockDateHandler) getLockDate(c *gin.Context) {
	setting, err := h.lockDates.GetSetting(c.Request.Context(), c.Param("owner_id"))
	if err != nil {
		respondError(c, err, "Failed to read lock date")
		return
	}
	c.JSON(http.StatusOK, dto.ToLockDateResponse(setting))
}

// updateLockDate godoc
// @Summary Close or reopen accounting periods
// @Description Entries dated on or before lockDate can no longer be posted or reversed. A null lockDate reopens every period.
// @Tags lock-date
// @Accept  json
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   setting body dto.UpdateLockDateRequest true "New setting"
// @Success 200 {object} dto.LockDateResponse
// @Failure 400 {object} map[string]string
// @Router /owners/{owner_id}/lock-date [put]
func (h *lockDateHandler) updateLockDate(c *gin.Context) {
	var req dto.UpdateLockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "UpdateLockDateRequest")
		return
	}
	setting, err := req.ToDomain(c.Param("owner_id"), callerID(c))
	if err != nil {
		bindError(c, err, "UpdateLockDateRequest")
		return
	}
	saved, err := h.lockDates.UpdateSetting(c.Request.Context(), setting)
	if err != nil {
		respondError(c, err, "Failed to update lock date")
		return
	}
	c.JSON(http.StatusOK, dto.ToLockDateResponse(saved))
}

// checkLockDate godoc
// @Summary Check whether a date is locked
// @Tags lock-date
// @Produce  json
// @Param   owner_id path string true "Owner ID"
// @Param   date query string true "Date to check (YYYY-MM-DD)"
// @Success 200 {object} dto.LockCheckResponse
// @Failure 400 {object} map[string]string
// @Router /owners/{owner_id}/lock-date/check [get]
func (h *lockDateHandler) checkLockDate(c *gin.Context) {
	raw := c.Query("date")
	date, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	locked, err := h.lockDates.IsLocked(c.Request.Context(), c.Param("owner_id"), date)
	if err != nil {
		respondError(c, err, "Failed to check lock date")
		return
	}
	c.JSON(http.StatusOK, dto.LockCheckResponse{Date: raw, Locked: locked})
}

// RegisterLockDateRoutes registers period-close routes under an owner-scoped group.
func RegisterLockDateRoutes(owner *gin.RouterGroup, lockDates portssvc.LockDateSvcFacade) {
	h := newLockDateHandler(lockDates)
	lock := owner.Group("/lock-date")
	{
		lock.GET("", h.getLockDate)
		lock.PUT("", h.updateLockDate)
		lock.GET("/check", h.checkLockDate)
	}
}
