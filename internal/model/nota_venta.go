package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una nota de venta.
const (
	NotaPendiente  = "pendiente"
	NotaCompletada = "completada"
	NotaAnulada    = "anulada"
	NotaReservada  = "reservada"
)

// NotaVenta — the primary key is the sequential folio shown to customers.
// MontoReserva and VigenciaReservaDias only carry data when Estado=reservada;
// the workflow zeroes them on any other estado.
type NotaVenta struct {
	Folio               int             `gorm:"primaryKey;autoIncrement;column:folio"`
	ClienteRUT          string          `gorm:"type:varchar(10);index;not null;column:cliente_rut"`
	VehiculoPatente     string          `gorm:"type:varchar(8);index;not null"`
	UsuarioID           uuid.UUID       `gorm:"type:uuid;not null"`
	PagoID              int             `gorm:"uniqueIndex;not null"`
	FechaVenta          time.Time       `gorm:"type:date;not null"`
	MontoFinal          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado              string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	MontoReserva        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	VigenciaReservaDias int             `gorm:"not null;default:0"`
	Observaciones       *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Cliente  *Cliente  `gorm:"foreignKey:ClienteRUT"`
	Vehiculo *Vehiculo `gorm:"foreignKey:VehiculoPatente"`
	Vendedor *Usuario  `gorm:"foreignKey:UsuarioID"`
	Pago     *Pago     `gorm:"foreignKey:PagoID"`
}

func (NotaVenta) TableName() string { return "notas_de_venta" }
