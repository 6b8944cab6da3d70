package service

import (
	"context"
	"fmt"
	"time"

	"automotora/internal/dto"
	"automotora/internal/infra"
	"automotora/internal/model"
	"automotora/internal/repository"
	"automotora/internal/rut"

	"gorm.io/gorm"
)

type VehiculoService interface {
	Crear(ctx context.Context, req dto.CrearVehiculoRequest) (*dto.VehiculoResponse, error)
	Obtener(ctx context.Context, patente string) (*dto.VehiculoResponse, error)
	Listar(ctx context.Context, filter dto.VehiculoFilter) (*dto.VehiculoListResponse, error)
	Actualizar(ctx context.Context, patente string, req dto.ActualizarVehiculoRequest) (*dto.VehiculoResponse, error)
	Eliminar(ctx context.Context, patente string) error
	// Reingresar puts a vehicle back on the lot and records the relist in its
	// historial. A no-op when the vehicle is already disponible.
	Reingresar(ctx context.Context, patente string) (*dto.VehiculoResponse, error)
	Historial(ctx context.Context, patente string) ([]dto.HistorialEntryResponse, error)
	// ContratoConsignacion renders the consignment contract PDF. Only valid
	// for vehicles with tipo_adquisicion=consignacion.
	ContratoConsignacion(ctx context.Context, patente string) ([]byte, error)
}

type vehiculoService struct {
	repo             repository.VehiculoRepository
	clienteRepo      repository.ClienteRepository
	notaRepo         repository.NotaVentaRepository
	historialRepo    repository.HistorialRepository
	nombreAutomotora string
}

func NewVehiculoService(
	repo repository.VehiculoRepository,
	clienteRepo repository.ClienteRepository,
	notaRepo repository.NotaVentaRepository,
	historialRepo repository.HistorialRepository,
	nombreAutomotora string,
) VehiculoService {
	return &vehiculoService{
		repo:             repo,
		clienteRepo:      clienteRepo,
		notaRepo:         notaRepo,
		historialRepo:    historialRepo,
		nombreAutomotora: nombreAutomotora,
	}
}

// resolverAdquisicion enforces the field split between the two acquisition
// modes and resolves the consignment owner. Fields of the mode that does not
// apply are cleared so stale data never survives a mode switch.
func (s *vehiculoService) resolverAdquisicion(ctx context.Context, v *model.Vehiculo) error {
	switch v.TipoAdquisicion {
	case model.AdquisicionConsignacion:
		if v.DuenoRUT == nil || *v.DuenoRUT == "" {
			return fmt.Errorf("vehiculo en consignacion requiere dueno_rut: %w", ErrIntegrityViolation)
		}
		rutNorm, err := rut.Normalize(*v.DuenoRUT)
		if err != nil {
			return err
		}
		if _, err := s.clienteRepo.FindByRUT(ctx, rutNorm); err != nil {
			return fmt.Errorf("dueno %s: %w", rutNorm, ErrNotFound)
		}
		v.DuenoRUT = &rutNorm
		v.CostoCompra = nil
	case model.AdquisicionCompraDirecta:
		if v.CostoCompra == nil {
			return fmt.Errorf("compra directa requiere costo_compra: %w", ErrIntegrityViolation)
		}
		v.DuenoRUT = nil
		v.PrecioDueno = nil
	}
	return nil
}

func (s *vehiculoService) Crear(ctx context.Context, req dto.CrearVehiculoRequest) (*dto.VehiculoResponse, error) {
	patente := normalizarPatente(req.Patente)
	if _, err := s.repo.FindByPatente(ctx, patente); err == nil {
		return nil, fmt.Errorf("patente %s: %w", patente, ErrDuplicateKey)
	}

	v := model.Vehiculo{
		Patente:         patente,
		Marca:           req.Marca,
		Modelo:          req.Modelo,
		Ano:             req.Ano,
		Color:           req.Color,
		ChasisN:         req.ChasisN,
		MotorN:          req.MotorN,
		Valor:           req.Valor,
		Descripcion:     req.Descripcion,
		TipoAdquisicion: req.TipoAdquisicion,
		CostoCompra:     req.CostoCompra,
		DuenoRUT:        req.DuenoRUT,
		PrecioDueno:     req.PrecioDueno,
		Kilometraje:     req.Kilometraje,
		Estado:          model.VehiculoDisponible,
	}
	if err := s.resolverAdquisicion(ctx, &v); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return nil, traducirErrorDB(err)
	}
	return vehiculoToResponse(&v), nil
}

func (s *vehiculoService) Obtener(ctx context.Context, patente string) (*dto.VehiculoResponse, error) {
	v, err := s.repo.FindByPatente(ctx, normalizarPatente(patente))
	if err != nil {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrNotFound)
	}
	return vehiculoToResponse(v), nil
}

func (s *vehiculoService) Listar(ctx context.Context, filter dto.VehiculoFilter) (*dto.VehiculoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	vehiculos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehiculoResponse, 0, len(vehiculos))
	for i := range vehiculos {
		items = append(items, *vehiculoToResponse(&vehiculos[i]))
	}
	return &dto.VehiculoListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Actualizar never touches Estado: that field belongs to the sales workflow
// and Reingresar.
func (s *vehiculoService) Actualizar(ctx context.Context, patente string, req dto.ActualizarVehiculoRequest) (*dto.VehiculoResponse, error) {
	v, err := s.repo.FindByPatente(ctx, normalizarPatente(patente))
	if err != nil {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrNotFound)
	}

	v.Marca = req.Marca
	v.Modelo = req.Modelo
	v.Ano = req.Ano
	v.Color = req.Color
	v.ChasisN = req.ChasisN
	v.MotorN = req.MotorN
	v.Valor = req.Valor
	v.Descripcion = req.Descripcion
	v.TipoAdquisicion = req.TipoAdquisicion
	v.CostoCompra = req.CostoCompra
	v.DuenoRUT = req.DuenoRUT
	v.PrecioDueno = req.PrecioDueno
	v.Kilometraje = req.Kilometraje

	if err := s.resolverAdquisicion(ctx, v); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, traducirErrorDB(err)
	}
	return vehiculoToResponse(v), nil
}

func (s *vehiculoService) Eliminar(ctx context.Context, patente string) error {
	patente = normalizarPatente(patente)
	if _, err := s.repo.FindByPatente(ctx, patente); err != nil {
		return fmt.Errorf("vehiculo %s: %w", patente, ErrNotFound)
	}
	n, err := s.notaRepo.CountByVehiculoPatente(ctx, patente)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("vehiculo %s tiene notas de venta asociadas: %w", patente, ErrIntegrityViolation)
	}
	return traducirErrorDB(s.repo.Delete(ctx, patente))
}

func (s *vehiculoService) Reingresar(ctx context.Context, patente string) (*dto.VehiculoResponse, error) {
	patente = normalizarPatente(patente)
	v, err := s.repo.FindByPatente(ctx, patente)
	if err != nil {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrNotFound)
	}
	// Idempotent: relisting an available vehicle changes nothing and writes
	// no historial entry.
	if v.Estado == model.VehiculoDisponible {
		return vehiculoToResponse(v), nil
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, patente, model.VehiculoDisponible); err != nil {
			return err
		}
		entry := model.HistorialVehiculo{
			VehiculoPatente: patente,
			Descripcion:     "Vehiculo reingresado al inventario como 'disponible'",
		}
		return s.historialRepo.CreateTx(tx, &entry)
	})
	if txErr != nil {
		return nil, traducirErrorDB(txErr)
	}

	v.Estado = model.VehiculoDisponible
	return vehiculoToResponse(v), nil
}

func (s *vehiculoService) Historial(ctx context.Context, patente string) ([]dto.HistorialEntryResponse, error) {
	patente = normalizarPatente(patente)
	if _, err := s.repo.FindByPatente(ctx, patente); err != nil {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrNotFound)
	}
	entries, err := s.historialRepo.ListByPatente(ctx, patente)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistorialEntryResponse{
			ID:              e.ID,
			VehiculoPatente: e.VehiculoPatente,
			Descripcion:     e.Descripcion,
			CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *vehiculoService) ContratoConsignacion(ctx context.Context, patente string) ([]byte, error) {
	v, err := s.repo.FindByPatenteConDueno(ctx, normalizarPatente(patente))
	if err != nil {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrNotFound)
	}
	if v.TipoAdquisicion != model.AdquisicionConsignacion {
		return nil, fmt.Errorf("el vehiculo %s no es de consignacion: %w", v.Patente, ErrIntegrityViolation)
	}
	return infra.ContratoConsignacionPDF(v, s.nombreAutomotora)
}

func vehiculoToResponse(v *model.Vehiculo) *dto.VehiculoResponse {
	return &dto.VehiculoResponse{
		Patente:         v.Patente,
		Marca:           v.Marca,
		Modelo:          v.Modelo,
		Ano:             v.Ano,
		Color:           v.Color,
		ChasisN:         v.ChasisN,
		MotorN:          v.MotorN,
		Valor:           v.Valor,
		Descripcion:     v.Descripcion,
		TipoAdquisicion: v.TipoAdquisicion,
		CostoCompra:     v.CostoCompra,
		DuenoRUT:        v.DuenoRUT,
		PrecioDueno:     v.PrecioDueno,
		Kilometraje:     v.Kilometraje,
		Estado:          v.Estado,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}
