package model

import "time"

// HistorialVehiculo is the append-only per-vehicle event journal.
// Entries are NEVER updated or deleted; the sales workflow (and the explicit
// relist operation) are the only producers.
type HistorialVehiculo struct {
	ID              int    `gorm:"primaryKey;autoIncrement"`
	VehiculoPatente string `gorm:"type:varchar(8);index;not null"`
	Descripcion     string `gorm:"not null"`
	CreatedAt       time.Time
}

func (HistorialVehiculo) TableName() string { return "historial_vehiculos" }
