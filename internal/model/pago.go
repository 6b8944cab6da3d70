package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PagoContado           = "contado"
	PagoCreditoAutomotriz = "credito_automotriz"
	PagoTarjetaCredito    = "tarjeta_credito"
	PagoTarjetaDebito     = "tarjeta_debito"
)

// Pago is owned one-to-one by a NotaVenta: it is created inside the same
// transaction (before the nota, so its ID can be embedded) and deleted with it.
type Pago struct {
	ID         int             `gorm:"primaryKey;autoIncrement"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	Detalles   *string
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Pago) TableName() string { return "pagos" }
