package repository

import (
	"context"

	"automotora/internal/model"

	"gorm.io/gorm"
)

// HistorialRepository is append-only: entries are created (usually inside the
// workflow transaction) and listed, never updated or deleted.
type HistorialRepository interface {
	CreateTx(tx *gorm.DB, h *model.HistorialVehiculo) error
	ListByPatente(ctx context.Context, patente string) ([]model.HistorialVehiculo, error)
}

type historialRepo struct{ db *gorm.DB }

func NewHistorialRepository(db *gorm.DB) HistorialRepository { return &historialRepo{db: db} }

func (r *historialRepo) CreateTx(tx *gorm.DB, h *model.HistorialVehiculo) error {
	return tx.Create(h).Error
}

// ListByPatente returns the journal newest-first, the order the UI shows it.
func (r *historialRepo) ListByPatente(ctx context.Context, patente string) ([]model.HistorialVehiculo, error) {
	var entries []model.HistorialVehiculo
	err := r.db.WithContext(ctx).
		Where("vehiculo_patente = ?", patente).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
