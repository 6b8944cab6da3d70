package model

import "time"

// Cliente is keyed by the normalized RUT: digits plus check character,
// lowercase, no punctuation. Normalization and checksum validation live in
// internal/rut; rows are only written through the service layer, which
// validates before touching the database.
type Cliente struct {
	RUT       string  `gorm:"type:varchar(10);primaryKey;column:rut"`
	Nombre    string  `gorm:"not null"`
	Apellido  string  `gorm:"not null"`
	Telefono  *string `gorm:"type:varchar(15)"`
	Direccion *string
	Ciudad    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
