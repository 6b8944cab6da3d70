package service_test

// In-memory repository stubs shared by the service tests. They mimic the
// behavior the services rely on (key lookups, sequences, tx-scoped writes)
// without a database; transactional methods ignore the nil *gorm.DB.

import (
	"context"
	"time"

	"automotora/internal/dto"
	"automotora/internal/model"
	"automotora/internal/repository"

	"gorm.io/gorm"
)

// ── Cliente ───────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[string]*model.Cliente
}

func newStubClienteRepo(clientes ...*model.Cliente) *stubClienteRepo {
	r := &stubClienteRepo{clientes: make(map[string]*model.Cliente)}
	for _, c := range clientes {
		r.clientes[c.RUT] = c
	}
	return r
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	cp := *c
	r.clientes[c.RUT] = &cp
	return nil
}

func (r *stubClienteRepo) FindByRUT(_ context.Context, rut string) (*model.Cliente, error) {
	c, ok := r.clientes[rut]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	cp := *c
	r.clientes[c.RUT] = &cp
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, rut string) error {
	delete(r.clientes, rut)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Vehiculo ──────────────────────────────────────────────────────────────────

type stubVehiculoRepo struct {
	vehiculos map[string]*model.Vehiculo
}

func newStubVehiculoRepo(vehiculos ...*model.Vehiculo) *stubVehiculoRepo {
	r := &stubVehiculoRepo{vehiculos: make(map[string]*model.Vehiculo)}
	for _, v := range vehiculos {
		r.vehiculos[v.Patente] = v
	}
	return r
}

func (r *stubVehiculoRepo) Create(_ context.Context, v *model.Vehiculo) error {
	cp := *v
	r.vehiculos[v.Patente] = &cp
	return nil
}

func (r *stubVehiculoRepo) FindByPatente(_ context.Context, patente string) (*model.Vehiculo, error) {
	v, ok := r.vehiculos[patente]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVehiculoRepo) FindByPatenteConDueno(ctx context.Context, patente string) (*model.Vehiculo, error) {
	return r.FindByPatente(ctx, patente)
}

func (r *stubVehiculoRepo) List(_ context.Context, _ dto.VehiculoFilter) ([]model.Vehiculo, int64, error) {
	out := make([]model.Vehiculo, 0, len(r.vehiculos))
	for _, v := range r.vehiculos {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVehiculoRepo) Update(_ context.Context, v *model.Vehiculo) error {
	cp := *v
	r.vehiculos[v.Patente] = &cp
	return nil
}

func (r *stubVehiculoRepo) Delete(_ context.Context, patente string) error {
	delete(r.vehiculos, patente)
	return nil
}

func (r *stubVehiculoRepo) CountByDuenoRUT(_ context.Context, rut string) (int64, error) {
	var n int64
	for _, v := range r.vehiculos {
		if v.DuenoRUT != nil && *v.DuenoRUT == rut {
			n++
		}
	}
	return n, nil
}

func (r *stubVehiculoRepo) UpdateEstadoTx(_ *gorm.DB, patente, estado string) error {
	v, ok := r.vehiculos[patente]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *stubVehiculoRepo) DB() *gorm.DB { return nil }

var _ repository.VehiculoRepository = (*stubVehiculoRepo)(nil)

// ── NotaVenta ─────────────────────────────────────────────────────────────────

type stubNotaRepo struct {
	notas    map[int]*model.NotaVenta
	pagos    map[int]*model.Pago
	folioSeq int
	pagoSeq  int
}

func newStubNotaRepo() *stubNotaRepo {
	return &stubNotaRepo{
		notas: make(map[int]*model.NotaVenta),
		pagos: make(map[int]*model.Pago),
	}
}

func (r *stubNotaRepo) CreateTx(_ *gorm.DB, n *model.NotaVenta) error {
	r.folioSeq++
	n.Folio = r.folioSeq
	cp := *n
	r.notas[n.Folio] = &cp
	return nil
}

func (r *stubNotaRepo) CreatePagoTx(_ *gorm.DB, p *model.Pago) error {
	r.pagoSeq++
	p.ID = r.pagoSeq
	cp := *p
	r.pagos[p.ID] = &cp
	return nil
}

func (r *stubNotaRepo) UpdateTx(_ *gorm.DB, n *model.NotaVenta) error {
	cp := *n
	r.notas[n.Folio] = &cp
	return nil
}

func (r *stubNotaRepo) UpdatePagoTx(_ *gorm.DB, p *model.Pago) error {
	cp := *p
	r.pagos[p.ID] = &cp
	return nil
}

func (r *stubNotaRepo) DeleteTx(_ *gorm.DB, folio, pagoID int) error {
	delete(r.notas, folio)
	delete(r.pagos, pagoID)
	return nil
}

func (r *stubNotaRepo) FindByFolio(_ context.Context, folio int) (*model.NotaVenta, error) {
	n, ok := r.notas[folio]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *stubNotaRepo) FindByFolioResuelta(_ context.Context, folio int) (*model.NotaVenta, error) {
	n, ok := r.notas[folio]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	if p, ok := r.pagos[n.PagoID]; ok {
		pc := *p
		cp.Pago = &pc
	}
	return &cp, nil
}

func (r *stubNotaRepo) List(_ context.Context, _ dto.NotaVentaFilter) ([]model.NotaVenta, int64, error) {
	out := make([]model.NotaVenta, 0, len(r.notas))
	for _, n := range r.notas {
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (r *stubNotaRepo) ListCompletadasEnRango(_ context.Context, desde, hasta time.Time) ([]model.NotaVenta, error) {
	var out []model.NotaVenta
	for _, n := range r.notas {
		if n.Estado == model.NotaCompletada && !n.FechaVenta.Before(desde) && !n.FechaVenta.After(hasta) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotaRepo) CountByClienteRUT(_ context.Context, rut string) (int64, error) {
	var n int64
	for _, nota := range r.notas {
		if nota.ClienteRUT == rut {
			n++
		}
	}
	return n, nil
}

func (r *stubNotaRepo) CountByVehiculoPatente(_ context.Context, patente string) (int64, error) {
	var n int64
	for _, nota := range r.notas {
		if nota.VehiculoPatente == patente {
			n++
		}
	}
	return n, nil
}

func (r *stubNotaRepo) DB() *gorm.DB { return nil }

var _ repository.NotaVentaRepository = (*stubNotaRepo)(nil)

// ── Historial ─────────────────────────────────────────────────────────────────

type stubHistorialRepo struct {
	entries []model.HistorialVehiculo
}

func newStubHistorialRepo() *stubHistorialRepo { return &stubHistorialRepo{} }

func (r *stubHistorialRepo) CreateTx(_ *gorm.DB, h *model.HistorialVehiculo) error {
	h.ID = len(r.entries) + 1
	r.entries = append(r.entries, *h)
	return nil
}

func (r *stubHistorialRepo) ListByPatente(_ context.Context, patente string) ([]model.HistorialVehiculo, error) {
	var out []model.HistorialVehiculo
	for _, e := range r.entries {
		if e.VehiculoPatente == patente {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.HistorialRepository = (*stubHistorialRepo)(nil)
