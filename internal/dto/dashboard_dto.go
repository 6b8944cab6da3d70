package dto

import "github.com/shopspring/decimal"

// IngresosFilter is bound from the query string of GET /v1/dashboard/ingresos.
type IngresosFilter struct {
	Desde string `form:"desde" validate:"required,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"required,datetime=2006-01-02"`
}

// GrupoIngreso is one bucket of the revenue breakdown (a date, a brand, or an
// acquisition type).
type GrupoIngreso struct {
	Clave    string          `json:"clave"`
	Cantidad int             `json:"cantidad"`
	Margen   decimal.Decimal `json:"margen"`
}

type IngresosResponse struct {
	Desde          string          `json:"desde"`
	Hasta          string          `json:"hasta"`
	Cantidad       int             `json:"cantidad"`
	MargenTotal    decimal.Decimal `json:"margen_total"`
	PorFecha       []GrupoIngreso  `json:"por_fecha"`
	PorMarca       []GrupoIngreso  `json:"por_marca"`
	PorAdquisicion []GrupoIngreso  `json:"por_adquisicion"`
}
