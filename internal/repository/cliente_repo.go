package repository

import (
	"context"

	"automotora/internal/dto"
	"automotora/internal/model"

	"gorm.io/gorm"
)

// ClienteRepository defines data access for clients, keyed by normalized RUT.
// Services depend on this interface, not on the concrete GORM implementation.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByRUT(ctx context.Context, rut string) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, rut string) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByRUT(ctx context.Context, rut string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("rut = ?", rut).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	if filter.Q != "" {
		term := "%" + filter.Q + "%"
		q = q.Where("rut ILIKE ? OR nombre ILIKE ? OR apellido ILIKE ?", term, term, term)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("apellido ASC, nombre ASC").Limit(filter.Limit).Offset(offset).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, rut string) error {
	return r.db.WithContext(ctx).Where("rut = ?", rut).Delete(&model.Cliente{}).Error
}
