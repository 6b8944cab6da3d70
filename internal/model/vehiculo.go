package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un vehículo. Transitions happen exclusively through the sales
// workflow and the explicit relist operation — never by direct edits.
const (
	VehiculoDisponible = "disponible"
	VehiculoReservado  = "reservado"
	VehiculoVendido    = "vendido"
)

// Tipos de adquisición de un vehículo.
const (
	AdquisicionConsignacion  = "consignacion"
	AdquisicionCompraDirecta = "compra_directa"
)

// Vehiculo is keyed by the normalized license plate (uppercase, max 8 chars).
// CostoCompra only carries data for compra_directa; DuenoRUT and PrecioDueno
// only for consignacion — the service zeroes whichever set does not apply.
type Vehiculo struct {
	Patente         string          `gorm:"type:varchar(8);primaryKey"`
	Marca           string          `gorm:"index;not null"`
	Modelo          string          `gorm:"not null"`
	Ano             int             `gorm:"not null"`
	Color           string          `gorm:"type:varchar(30)"`
	ChasisN         string          `gorm:"uniqueIndex;not null;column:chasis_n"`
	MotorN          string          `gorm:"uniqueIndex;not null;column:motor_n"`
	Valor           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion     *string
	TipoAdquisicion string           `gorm:"type:varchar(20);not null"`
	CostoCompra     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DuenoRUT        *string          `gorm:"type:varchar(10);index;column:dueno_rut"`
	PrecioDueno     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Kilometraje     int              `gorm:"not null;default:0"`
	Estado          string           `gorm:"type:varchar(20);not null;default:'disponible'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Dueno *Cliente `gorm:"foreignKey:DuenoRUT"`
}

func (Vehiculo) TableName() string { return "vehiculos" }
