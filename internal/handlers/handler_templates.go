package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

type templateHandler struct {
	templates portssvc.TemplateResolverSvc
}

// listTemplates godoc
// @Summary List template kinds
// @Tags templates
// @Produce  json
// @Success 200 {array} string
// @Router /templates [get]
func (h *templateHandler) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.templates.Kinds())
}

// resolveTemplate godoc
// @Summary Preview the accounts a template posts to
// @Tags templates
// @Accept  json
// @Produce  json
// @Param   template body dto.ResolveTemplateRequest true "Template kind and context"
// @Success 200 {object} domain.AccountPair
// @Failure 400 {object} map[string]string
// @Router /templates/resolve [post]
func (h *templateHandler) resolveTemplate(c *gin.Context) {
	var req dto.ResolveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ResolveTemplateRequest")
		return
	}
	pair, err := h.templates.Resolve(req.TemplateKind, req.Context.ToTemplateContext())
	if err != nil {
		respondError(c, err, "Failed to resolve template")
		return
	}
	c.JSON(http.StatusOK, pair)
}

// RegisterTemplateRoutes registers the read-only template routes.
func RegisterTemplateRoutes(group *gin.RouterGroup, templates portssvc.TemplateResolverSvc) {
	h := &templateHandler{templates: templates}
	group.GET("/templates", h.listTemplates)
	group.POST("/templates/resolve", h.resolveTemplate)
}
