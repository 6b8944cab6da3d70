package dto

import "github.com/shopspring/decimal"

// NotaVentaRequest is shared by create and edit. MontoReserva and
// VigenciaReservaDias are only honored when estado=reservada; the workflow
// zeroes them otherwise.
type NotaVentaRequest struct {
	ClienteRUT          string          `json:"cliente_rut"           validate:"required,max=12"`
	VehiculoPatente     string          `json:"vehiculo_patente"      validate:"required,max=8"`
	FechaVenta          string          `json:"fecha_venta"           validate:"required,datetime=2006-01-02"`
	MontoFinal          decimal.Decimal `json:"monto_final"           validate:"required,gt=0"`
	MetodoPago          string          `json:"metodo_pago"           validate:"required,oneof=contado credito_automotriz tarjeta_credito tarjeta_debito"`
	DetallesPago        *string         `json:"detalles_pago"`
	Estado              string          `json:"estado"                validate:"required,oneof=pendiente completada anulada reservada"`
	MontoReserva        decimal.Decimal `json:"monto_reserva"         validate:"min=0"`
	VigenciaReservaDias int             `json:"vigencia_reserva_dias" validate:"min=0"`
	Observaciones       *string         `json:"observaciones"`
}

type NotaVentaResponse struct {
	Folio               int             `json:"folio"`
	ClienteRUT          string          `json:"cliente_rut"`
	Cliente             string          `json:"cliente"`
	VehiculoPatente     string          `json:"vehiculo_patente"`
	Vehiculo            string          `json:"vehiculo"`
	Vendedor            string          `json:"vendedor"`
	MetodoPago          string          `json:"metodo_pago"`
	FechaVenta          string          `json:"fecha_venta"`
	MontoFinal          decimal.Decimal `json:"monto_final"`
	Estado              string          `json:"estado"`
	MontoReserva        decimal.Decimal `json:"monto_reserva"`
	VigenciaReservaDias int             `json:"vigencia_reserva_dias"`
	Observaciones       *string         `json:"observaciones"`
	CreatedAt           string          `json:"created_at"`
}

// NotaVentaFilter is bound from the query string of GET /v1/notas-venta.
// Campo narrows the search the way the original list screen does.
type NotaVentaFilter struct {
	Q     string `form:"q"`
	Campo string `form:"campo,default=todos"` // folio | cliente | vehiculo | estado | todos
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type NotaVentaListResponse struct {
	Data  []NotaVentaResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// EnviarNotaRequest mails the nota de venta PDF to the given address.
type EnviarNotaRequest struct {
	Email string `json:"email" validate:"required,email"`
}
