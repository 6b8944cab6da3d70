package repository

import (
	"context"

	"automotora/internal/dto"
	"automotora/internal/model"

	"gorm.io/gorm"
)

// VehiculoRepository defines data access for vehicles, keyed by normalized
// license plate. Estado changes go through UpdateEstado/UpdateEstadoTx only.
type VehiculoRepository interface {
	Create(ctx context.Context, v *model.Vehiculo) error
	FindByPatente(ctx context.Context, patente string) (*model.Vehiculo, error)
	// FindByPatenteConDueno resolves the consignment owner for contracts.
	FindByPatenteConDueno(ctx context.Context, patente string) (*model.Vehiculo, error)
	List(ctx context.Context, filter dto.VehiculoFilter) ([]model.Vehiculo, int64, error)
	Update(ctx context.Context, v *model.Vehiculo) error
	Delete(ctx context.Context, patente string) error
	CountByDuenoRUT(ctx context.Context, rut string) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	UpdateEstadoTx(tx *gorm.DB, patente, estado string) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type vehiculoRepo struct{ db *gorm.DB }

func NewVehiculoRepository(db *gorm.DB) VehiculoRepository { return &vehiculoRepo{db: db} }

func (r *vehiculoRepo) DB() *gorm.DB { return r.db }

func (r *vehiculoRepo) Create(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vehiculoRepo) FindByPatente(ctx context.Context, patente string) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).Where("patente = ?", patente).First(&v).Error
	return &v, err
}

func (r *vehiculoRepo) FindByPatenteConDueno(ctx context.Context, patente string) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).Preload("Dueno").Where("patente = ?", patente).First(&v).Error
	return &v, err
}

func (r *vehiculoRepo) List(ctx context.Context, filter dto.VehiculoFilter) ([]model.Vehiculo, int64, error) {
	var vehiculos []model.Vehiculo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Vehiculo{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Q != "" {
		term := "%" + filter.Q + "%"
		q = q.Where("patente ILIKE ? OR marca ILIKE ? OR modelo ILIKE ?", term, term, term)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&vehiculos).Error
	return vehiculos, total, err
}

func (r *vehiculoRepo) Update(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vehiculoRepo) Delete(ctx context.Context, patente string) error {
	return r.db.WithContext(ctx).Where("patente = ?", patente).Delete(&model.Vehiculo{}).Error
}

func (r *vehiculoRepo) CountByDuenoRUT(ctx context.Context, rut string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Vehiculo{}).Where("dueno_rut = ?", rut).Count(&n).Error
	return n, err
}

func (r *vehiculoRepo) UpdateEstadoTx(tx *gorm.DB, patente, estado string) error {
	return tx.Model(&model.Vehiculo{}).Where("patente = ?", patente).Update("estado", estado).Error
}
