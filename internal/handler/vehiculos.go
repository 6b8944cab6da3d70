package handler

import (
	"fmt"
	"net/http"

	"automotora/internal/dto"
	"automotora/internal/service"

	"github.com/gin-gonic/gin"
)

type VehiculosHandler struct{ svc service.VehiculoService }

func NewVehiculosHandler(svc service.VehiculoService) *VehiculosHandler {
	return &VehiculosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear vehiculo
// @Tags vehiculos
// @Accept json
// @Produce json
// @Param body body dto.CrearVehiculoRequest true "Datos del vehiculo"
// @Success 201 {object} dto.VehiculoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/vehiculos [post]
func (h *VehiculosHandler) Crear(c *gin.Context) {
	var req dto.CrearVehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar vehiculos con filtro por estado y busqueda
// @Tags vehiculos
// @Produce json
// @Param estado query string false "disponible | reservado | vendido | all"
// @Success 200 {object} dto.VehiculoListResponse
// @Router /v1/vehiculos [get]
func (h *VehiculosHandler) Listar(c *gin.Context) {
	var filter dto.VehiculoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("patente"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarVehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), c.Param("patente"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("patente")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reingresar godoc
// @Summary Reingresar un vehiculo al inventario como disponible
// @Tags vehiculos
// @Produce json
// @Success 200 {object} dto.VehiculoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/vehiculos/{patente}/reingresar [post]
func (h *VehiculosHandler) Reingresar(c *gin.Context) {
	resp, err := h.svc.Reingresar(c.Request.Context(), c.Param("patente"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Historial(c *gin.Context) {
	entries, err := h.svc.Historial(c.Request.Context(), c.Param("patente"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// ContratoConsignacion streams the consignment contract PDF.
func (h *VehiculosHandler) ContratoConsignacion(c *gin.Context) {
	patente := c.Param("patente")
	pdf, err := h.svc.ContratoConsignacion(c.Request.Context(), patente)
	if err != nil {
		respondError(c, err)
		return
	}
	servePDF(c, fmt.Sprintf("contrato_consignacion_%s.pdf", patente), pdf)
}
