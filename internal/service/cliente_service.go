package service

import (
	"context"
	"fmt"
	"time"

	"automotora/internal/dto"
	"automotora/internal/model"
	"automotora/internal/repository"
	"automotora/internal/rut"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, rawRUT string) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, rawRUT string, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, rawRUT string) error
}

type clienteService struct {
	repo         repository.ClienteRepository
	notaRepo     repository.NotaVentaRepository
	vehiculoRepo repository.VehiculoRepository
}

func NewClienteService(
	repo repository.ClienteRepository,
	notaRepo repository.NotaVentaRepository,
	vehiculoRepo repository.VehiculoRepository,
) ClienteService {
	return &clienteService{repo: repo, notaRepo: notaRepo, vehiculoRepo: vehiculoRepo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	rutNorm, err := rut.Normalize(req.RUT)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByRUT(ctx, rutNorm); err == nil {
		return nil, fmt.Errorf("cliente %s: %w", rutNorm, ErrDuplicateKey)
	}

	c := model.Cliente{
		RUT:       rutNorm,
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Ciudad:    req.Ciudad,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, traducirErrorDB(err)
	}
	return clienteToResponse(&c), nil
}

func (s *clienteService) Obtener(ctx context.Context, rawRUT string) (*dto.ClienteResponse, error) {
	rutNorm, err := rut.Normalize(rawRUT)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByRUT(ctx, rutNorm)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", rutNorm, ErrNotFound)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, rawRUT string, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	rutNorm, err := rut.Normalize(rawRUT)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByRUT(ctx, rutNorm)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", rutNorm, ErrNotFound)
	}

	c.Nombre = req.Nombre
	c.Apellido = req.Apellido
	c.Telefono = req.Telefono
	c.Direccion = req.Direccion
	c.Ciudad = req.Ciudad

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, traducirErrorDB(err)
	}
	return clienteToResponse(c), nil
}

// Eliminar refuses to remove a cliente that still backs sales notes or owns
// consigned vehicles.
func (s *clienteService) Eliminar(ctx context.Context, rawRUT string) error {
	rutNorm, err := rut.Normalize(rawRUT)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindByRUT(ctx, rutNorm); err != nil {
		return fmt.Errorf("cliente %s: %w", rutNorm, ErrNotFound)
	}

	notas, err := s.notaRepo.CountByClienteRUT(ctx, rutNorm)
	if err != nil {
		return err
	}
	if notas > 0 {
		return fmt.Errorf("cliente %s tiene notas de venta asociadas: %w", rutNorm, ErrIntegrityViolation)
	}
	consignados, err := s.vehiculoRepo.CountByDuenoRUT(ctx, rutNorm)
	if err != nil {
		return err
	}
	if consignados > 0 {
		return fmt.Errorf("cliente %s es dueno de vehiculos en consignacion: %w", rutNorm, ErrIntegrityViolation)
	}

	return traducirErrorDB(s.repo.Delete(ctx, rutNorm))
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		RUT:       c.RUT,
		Nombre:    c.Nombre,
		Apellido:  c.Apellido,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		Ciudad:    c.Ciudad,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
