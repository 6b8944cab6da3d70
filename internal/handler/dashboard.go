package handler

import (
	"net/http"

	"automotora/internal/dto"
	"automotora/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Ingresos godoc
// @Summary Resumen de ingresos por rango de fechas
// @Tags dashboard
// @Produce json
// @Param desde query string true "YYYY-MM-DD"
// @Param hasta query string true "YYYY-MM-DD"
// @Success 200 {object} dto.IngresosResponse
// @Router /v1/dashboard/ingresos [get]
func (h *DashboardHandler) Ingresos(c *gin.Context) {
	var filter dto.IngresosFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Ingresos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
