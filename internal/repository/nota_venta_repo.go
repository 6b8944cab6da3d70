package repository

import (
	"context"
	"time"

	"automotora/internal/dto"
	"automotora/internal/model"

	"gorm.io/gorm"
)

// NotaVentaRepository defines data access for sales notes and their owned
// payments. All mutations run inside a transaction passed in by the workflow
// service, so a failing step rolls back the whole operation.
type NotaVentaRepository interface {
	CreateTx(tx *gorm.DB, n *model.NotaVenta) error
	CreatePagoTx(tx *gorm.DB, p *model.Pago) error
	UpdateTx(tx *gorm.DB, n *model.NotaVenta) error
	UpdatePagoTx(tx *gorm.DB, p *model.Pago) error
	// DeleteTx removes the nota and its pago — no orphan payments.
	DeleteTx(tx *gorm.DB, folio, pagoID int) error

	FindByFolio(ctx context.Context, folio int) (*model.NotaVenta, error)
	// FindByFolioResuelta preloads cliente, vehiculo, vendedor and pago for
	// responses and PDF generation.
	FindByFolioResuelta(ctx context.Context, folio int) (*model.NotaVenta, error)
	List(ctx context.Context, filter dto.NotaVentaFilter) ([]model.NotaVenta, int64, error)
	ListCompletadasEnRango(ctx context.Context, desde, hasta time.Time) ([]model.NotaVenta, error)

	CountByClienteRUT(ctx context.Context, rut string) (int64, error)
	CountByVehiculoPatente(ctx context.Context, patente string) (int64, error)

	// DB exposes the underlying *gorm.DB so the workflow opens transactions.
	DB() *gorm.DB
}

type notaVentaRepo struct{ db *gorm.DB }

func NewNotaVentaRepository(db *gorm.DB) NotaVentaRepository { return &notaVentaRepo{db: db} }

func (r *notaVentaRepo) DB() *gorm.DB { return r.db }

func (r *notaVentaRepo) CreateTx(tx *gorm.DB, n *model.NotaVenta) error {
	return tx.Create(n).Error
}

func (r *notaVentaRepo) CreatePagoTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *notaVentaRepo) UpdateTx(tx *gorm.DB, n *model.NotaVenta) error {
	return tx.Save(n).Error
}

func (r *notaVentaRepo) UpdatePagoTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Save(p).Error
}

func (r *notaVentaRepo) DeleteTx(tx *gorm.DB, folio, pagoID int) error {
	if err := tx.Where("folio = ?", folio).Delete(&model.NotaVenta{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", pagoID).Delete(&model.Pago{}).Error
}

func (r *notaVentaRepo) FindByFolio(ctx context.Context, folio int) (*model.NotaVenta, error) {
	var n model.NotaVenta
	err := r.db.WithContext(ctx).Where("folio = ?", folio).First(&n).Error
	return &n, err
}

func (r *notaVentaRepo) FindByFolioResuelta(ctx context.Context, folio int) (*model.NotaVenta, error) {
	var n model.NotaVenta
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Vehiculo").Preload("Vendedor").Preload("Pago").
		Where("folio = ?", folio).First(&n).Error
	return &n, err
}

func (r *notaVentaRepo) List(ctx context.Context, filter dto.NotaVentaFilter) ([]model.NotaVenta, int64, error) {
	var notas []model.NotaVenta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.NotaVenta{}).
		Joins("JOIN clientes ON clientes.rut = notas_de_venta.cliente_rut").
		Joins("JOIN vehiculos ON vehiculos.patente = notas_de_venta.vehiculo_patente")

	if filter.Q != "" {
		term := "%" + filter.Q + "%"
		switch filter.Campo {
		case "folio":
			q = q.Where("CAST(notas_de_venta.folio AS TEXT) LIKE ?", term)
		case "cliente":
			q = q.Where("clientes.nombre ILIKE ? OR clientes.apellido ILIKE ? OR clientes.rut ILIKE ?", term, term, term)
		case "vehiculo":
			q = q.Where("vehiculos.marca ILIKE ? OR vehiculos.modelo ILIKE ? OR vehiculos.patente ILIKE ?", term, term, term)
		case "estado":
			q = q.Where("notas_de_venta.estado ILIKE ?", term)
		default:
			q = q.Where(`CAST(notas_de_venta.folio AS TEXT) LIKE ?
				OR clientes.nombre ILIKE ? OR clientes.apellido ILIKE ? OR clientes.rut ILIKE ?
				OR vehiculos.marca ILIKE ? OR vehiculos.modelo ILIKE ? OR vehiculos.patente ILIKE ?
				OR notas_de_venta.estado ILIKE ?`,
				term, term, term, term, term, term, term, term)
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Vehiculo").Preload("Vendedor").Preload("Pago").
		Order("notas_de_venta.fecha_venta DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&notas).Error
	return notas, total, err
}

func (r *notaVentaRepo) ListCompletadasEnRango(ctx context.Context, desde, hasta time.Time) ([]model.NotaVenta, error) {
	var notas []model.NotaVenta
	err := r.db.WithContext(ctx).
		Where("estado = ? AND fecha_venta BETWEEN ? AND ?", model.NotaCompletada, desde, hasta).
		Find(&notas).Error
	return notas, err
}

func (r *notaVentaRepo) CountByClienteRUT(ctx context.Context, rut string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.NotaVenta{}).Where("cliente_rut = ?", rut).Count(&n).Error
	return n, err
}

func (r *notaVentaRepo) CountByVehiculoPatente(ctx context.Context, patente string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.NotaVenta{}).Where("vehiculo_patente = ?", patente).Count(&n).Error
	return n, err
}
