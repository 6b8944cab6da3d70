package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"automotora/internal/apierror"
	"automotora/internal/dto"
	"automotora/internal/infra"
	"automotora/internal/middleware"
	"automotora/internal/model"
	"automotora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotasVentaHandler struct {
	svc              service.NotaVentaService
	nombreAutomotora string
}

func NewNotasVentaHandler(svc service.NotaVentaService, nombreAutomotora string) *NotasVentaHandler {
	return &NotasVentaHandler{svc: svc, nombreAutomotora: nombreAutomotora}
}

func folioParam(c *gin.Context) (int, bool) {
	folio, err := strconv.Atoi(c.Param("folio"))
	if err != nil || folio < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("Folio invalido"))
		return 0, false
	}
	return folio, true
}

// Crear godoc
// @Summary Crear nota de venta (crea el pago y actualiza el vehiculo)
// @Tags notas-venta
// @Accept json
// @Produce json
// @Param body body dto.NotaVentaRequest true "Datos de la venta"
// @Success 201 {object} dto.NotaVentaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/notas-venta [post]
func (h *NotasVentaHandler) Crear(c *gin.Context) {
	var req dto.NotaVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
		return
	}

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar notas de venta con busqueda por campo
// @Tags notas-venta
// @Produce json
// @Param campo query string false "folio | cliente | vehiculo | estado | todos"
// @Success 200 {object} dto.NotaVentaListResponse
// @Router /v1/notas-venta [get]
func (h *NotasVentaHandler) Listar(c *gin.Context) {
	var filter dto.NotaVentaFilter
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

func (h *NotasVentaHandler) Obtener(c *gin.Context) {
	folio, ok := folioParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), folio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotasVentaHandler) Editar(c *gin.Context) {
	folio, ok := folioParam(c)
	if !ok {
		return
	}
	var req dto.NotaVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Editar(c.Request.Context(), folio, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotasVentaHandler) Eliminar(c *gin.Context) {
	folio, ok := folioParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), folio); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PDF streams the nota de venta document.
func (h *NotasVentaHandler) PDF(c *gin.Context) {
	folio, ok := folioParam(c)
	if !ok {
		return
	}
	nota, err := h.svc.ObtenerResuelta(c.Request.Context(), folio)
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := infra.NotaVentaPDF(nota, h.nombreAutomotora)
	if err != nil {
		respondError(c, err)
		return
	}
	servePDF(c, fmt.Sprintf("nota_venta_%d.pdf", folio), data)
}

// PDFReserva streams the reservation receipt. Only valid while the nota is
// reservada.
func (h *NotasVentaHandler) PDFReserva(c *gin.Context) {
	folio, ok := folioParam(c)
	if !ok {
		return
	}
	nota, err := h.svc.ObtenerResuelta(c.Request.Context(), folio)
	if err != nil {
		respondError(c, err)
		return
	}
	if nota.Estado != model.NotaReservada {
		c.JSON(http.StatusConflict, apierror.New("La nota no esta en estado 'reservada'"))
		return
	}
	data, err := infra.ReservaPDF(nota, h.nombreAutomotora)
	if err != nil {
		respondError(c, err)
		return
	}
	servePDF(c, fmt.Sprintf("reserva_%d.pdf", folio), data)
}

// PDFDevolucion streams the refund receipt. Only valid once the nota is
// anulada.
func (h *NotasVentaHandler) PDFDevolucion(c *gin.Context) {
	folio, ok := folioParam(c)
	if !ok {
		return
	}
	nota, err := h.svc.ObtenerResuelta(c.Request.Context(), folio)
	if err != nil {
		respondError(c, err)
		return
	}
	if nota.Estado != model.NotaAnulada {
		c.JSON(http.StatusConflict, apierror.New("La nota no esta en estado 'anulada'"))
		return
	}
	data, err := infra.DevolucionPDF(nota, h.nombreAutomotora)
	if err != nil {
		respondError(c, err)
		return
	}
	servePDF(c, fmt.Sprintf("devolucion_%d.pdf", folio), data)
}

// Enviar queues the nota PDF for delivery to the given email address. Returns
// 202 because the mail leaves through the async worker pool.
func (h *NotasVentaHandler) Enviar(c *gin.Context) {
	folio, ok := folioParam(c)
	if !ok {
		return
	}
	var req dto.EnviarNotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Enviar(c.Request.Context(), folio, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "Nota de venta encolada para envio"})
}
