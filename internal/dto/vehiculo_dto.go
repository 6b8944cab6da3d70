package dto

import "github.com/shopspring/decimal"

type CrearVehiculoRequest struct {
	Patente     string          `json:"patente"     validate:"required,max=8"`
	Marca       string          `json:"marca"       validate:"required,max=50"`
	Modelo      string          `json:"modelo"      validate:"required,max=50"`
	Ano         int             `json:"ano"         validate:"required,min=1950"`
	Color       string          `json:"color"       validate:"omitempty,max=30"`
	ChasisN     string          `json:"chasis_n"    validate:"required,max=100"`
	MotorN      string          `json:"motor_n"     validate:"required,max=100"`
	Valor       decimal.Decimal `json:"valor"       validate:"required,gt=0"`
	Descripcion *string         `json:"descripcion"`
	// TipoAdquisicion decides which of the two field groups below applies.
	TipoAdquisicion string           `json:"tipo_adquisicion" validate:"required,oneof=consignacion compra_directa"`
	CostoCompra     *decimal.Decimal `json:"costo_compra"     validate:"omitempty,gt=0"`
	DuenoRUT        *string          `json:"dueno_rut"        validate:"omitempty,max=12"`
	PrecioDueno     *decimal.Decimal `json:"precio_dueno"     validate:"omitempty,gt=0"`
	Kilometraje     int              `json:"kilometraje"      validate:"min=0"`
}

// ActualizarVehiculoRequest — patente is the natural key and cannot change;
// estado is never editable directly (sales workflow / relist only).
type ActualizarVehiculoRequest struct {
	Marca           string           `json:"marca"       validate:"required,max=50"`
	Modelo          string           `json:"modelo"      validate:"required,max=50"`
	Ano             int              `json:"ano"         validate:"required,min=1950"`
	Color           string           `json:"color"       validate:"omitempty,max=30"`
	ChasisN         string           `json:"chasis_n"    validate:"required,max=100"`
	MotorN          string           `json:"motor_n"     validate:"required,max=100"`
	Valor           decimal.Decimal  `json:"valor"       validate:"required,gt=0"`
	Descripcion     *string          `json:"descripcion"`
	TipoAdquisicion string           `json:"tipo_adquisicion" validate:"required,oneof=consignacion compra_directa"`
	CostoCompra     *decimal.Decimal `json:"costo_compra"     validate:"omitempty,gt=0"`
	DuenoRUT        *string          `json:"dueno_rut"        validate:"omitempty,max=12"`
	PrecioDueno     *decimal.Decimal `json:"precio_dueno"     validate:"omitempty,gt=0"`
	Kilometraje     int              `json:"kilometraje"      validate:"min=0"`
}

type VehiculoResponse struct {
	Patente         string           `json:"patente"`
	Marca           string           `json:"marca"`
	Modelo          string           `json:"modelo"`
	Ano             int              `json:"ano"`
	Color           string           `json:"color"`
	ChasisN         string           `json:"chasis_n"`
	MotorN          string           `json:"motor_n"`
	Valor           decimal.Decimal  `json:"valor"`
	Descripcion     *string          `json:"descripcion"`
	TipoAdquisicion string           `json:"tipo_adquisicion"`
	CostoCompra     *decimal.Decimal `json:"costo_compra"`
	DuenoRUT        *string          `json:"dueno_rut"`
	PrecioDueno     *decimal.Decimal `json:"precio_dueno"`
	Kilometraje     int              `json:"kilometraje"`
	Estado          string           `json:"estado"`
	CreatedAt       string           `json:"created_at"`
}

// VehiculoFilter is bound from the query string of GET /v1/vehiculos.
type VehiculoFilter struct {
	Q      string `form:"q"`
	Estado string `form:"estado"` // disponible | reservado | vendido | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type VehiculoListResponse struct {
	Data  []VehiculoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
