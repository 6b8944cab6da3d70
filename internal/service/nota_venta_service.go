package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"automotora/internal/dto"
	"automotora/internal/infra"
	"automotora/internal/model"
	"automotora/internal/repository"
	"automotora/internal/rut"
	"automotora/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type NotaVentaService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.NotaVentaRequest) (*dto.NotaVentaResponse, error)
	Editar(ctx context.Context, folio int, req dto.NotaVentaRequest) (*dto.NotaVentaResponse, error)
	Eliminar(ctx context.Context, folio int) error
	Obtener(ctx context.Context, folio int) (*dto.NotaVentaResponse, error)
	// ObtenerResuelta returns the nota with cliente/vehiculo/vendedor/pago
	// loaded, ready for PDF generation.
	ObtenerResuelta(ctx context.Context, folio int) (*model.NotaVenta, error)
	Listar(ctx context.Context, filter dto.NotaVentaFilter) (*dto.NotaVentaListResponse, error)
	Enviar(ctx context.Context, folio int, email string) error
}

type notaVentaService struct {
	repo             repository.NotaVentaRepository
	clienteRepo      repository.ClienteRepository
	vehiculoRepo     repository.VehiculoRepository
	historialRepo    repository.HistorialRepository
	dispatcher       *worker.Dispatcher
	nombreAutomotora string
}

func NewNotaVentaService(
	repo repository.NotaVentaRepository,
	clienteRepo repository.ClienteRepository,
	vehiculoRepo repository.VehiculoRepository,
	historialRepo repository.HistorialRepository,
	dispatcher *worker.Dispatcher,
	nombreAutomotora string,
) NotaVentaService {
	return &notaVentaService{
		repo:             repo,
		clienteRepo:      clienteRepo,
		vehiculoRepo:     vehiculoRepo,
		historialRepo:    historialRepo,
		dispatcher:       dispatcher,
		nombreAutomotora: nombreAutomotora,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// normalizarPatente brings a license plate to its storage form.
func normalizarPatente(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// estadoVehiculoPara maps a nota estado to the vehicle shadow estado:
// completada/pendiente hold the car as sold, reservada as reserved, and
// anulada releases it back to inventory.
func estadoVehiculoPara(estadoNota string) string {
	switch estadoNota {
	case model.NotaReservada:
		return model.VehiculoReservado
	case model.NotaAnulada:
		return model.VehiculoDisponible
	default:
		return model.VehiculoVendido
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// One ACID transaction: create pago, create nota, move the vehicle to its
// shadow estado, append the historial entry. Any failure rolls everything back.

func (s *notaVentaService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.NotaVentaRequest) (*dto.NotaVentaResponse, error) {
	rutNorm, err := rut.Normalize(req.ClienteRUT)
	if err != nil {
		return nil, err
	}
	patente := normalizarPatente(req.VehiculoPatente)

	if _, err := s.clienteRepo.FindByRUT(ctx, rutNorm); err != nil {
		return nil, fmt.Errorf("cliente %s: %w", rutNorm, ErrNotFound)
	}
	vehiculo, err := s.vehiculoRepo.FindByPatente(ctx, patente)
	if err != nil {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrNotFound)
	}
	if vehiculo.Estado != model.VehiculoDisponible {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrVehicleUnavailable)
	}

	fechaVenta, err := time.Parse("2006-01-02", req.FechaVenta)
	if err != nil {
		return nil, fmt.Errorf("fecha_venta invalida: %w", err)
	}

	var nota model.NotaVenta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pago := model.Pago{
			MetodoPago: req.MetodoPago,
			Detalles:   req.DetallesPago,
			Total:      req.MontoFinal,
		}
		if err := s.repo.CreatePagoTx(tx, &pago); err != nil {
			return err
		}

		nota = model.NotaVenta{
			ClienteRUT:      rutNorm,
			VehiculoPatente: patente,
			UsuarioID:       usuarioID,
			PagoID:          pago.ID,
			FechaVenta:      fechaVenta,
			MontoFinal:      req.MontoFinal,
			Estado:          req.Estado,
			Observaciones:   req.Observaciones,
		}
		// Reservation fields only carry data on a reserva
		if req.Estado == model.NotaReservada {
			nota.MontoReserva = req.MontoReserva
			nota.VigenciaReservaDias = req.VigenciaReservaDias
		} else {
			nota.MontoReserva = decimal.Zero
			nota.VigenciaReservaDias = 0
		}
		if err := s.repo.CreateTx(tx, &nota); err != nil {
			return err
		}

		if err := s.vehiculoRepo.UpdateEstadoTx(tx, patente, estadoVehiculoPara(nota.Estado)); err != nil {
			return err
		}

		entry := model.HistorialVehiculo{
			VehiculoPatente: patente,
			Descripcion:     fmt.Sprintf("Nota de venta #%d creada con estado '%s'", nota.Folio, nota.Estado),
		}
		return s.historialRepo.CreateTx(tx, &entry)
	})
	if txErr != nil {
		return nil, traducirErrorDB(txErr)
	}

	return s.responder(ctx, &nota), nil
}

// ── Editar ────────────────────────────────────────────────────────────────────
// The vehicle already held by this nota is exempt from the disponible
// precondition; switching to a different vehicle requires it to be disponible.
// The vehicle estado is recomputed from the new nota estado regardless of what
// it was before.

func (s *notaVentaService) Editar(ctx context.Context, folio int, req dto.NotaVentaRequest) (*dto.NotaVentaResponse, error) {
	nota, err := s.repo.FindByFolioResuelta(ctx, folio)
	if err != nil {
		return nil, fmt.Errorf("nota de venta #%d: %w", folio, ErrNotFound)
	}

	rutNorm, err := rut.Normalize(req.ClienteRUT)
	if err != nil {
		return nil, err
	}
	patente := normalizarPatente(req.VehiculoPatente)

	if _, err := s.clienteRepo.FindByRUT(ctx, rutNorm); err != nil {
		return nil, fmt.Errorf("cliente %s: %w", rutNorm, ErrNotFound)
	}
	vehiculo, err := s.vehiculoRepo.FindByPatente(ctx, patente)
	if err != nil {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrNotFound)
	}
	if patente != nota.VehiculoPatente && vehiculo.Estado != model.VehiculoDisponible {
		return nil, fmt.Errorf("vehiculo %s: %w", patente, ErrVehicleUnavailable)
	}

	fechaVenta, err := time.Parse("2006-01-02", req.FechaVenta)
	if err != nil {
		return nil, fmt.Errorf("fecha_venta invalida: %w", err)
	}
	if nota.Pago == nil {
		return nil, errors.New("nota de venta sin pago asociado")
	}

	estadoAnterior := nota.Estado

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		nota.ClienteRUT = rutNorm
		nota.VehiculoPatente = patente
		nota.FechaVenta = fechaVenta
		nota.MontoFinal = req.MontoFinal
		nota.Estado = req.Estado
		nota.Observaciones = req.Observaciones
		if req.Estado == model.NotaReservada {
			nota.MontoReserva = req.MontoReserva
			nota.VigenciaReservaDias = req.VigenciaReservaDias
		} else {
			nota.MontoReserva = decimal.Zero
			nota.VigenciaReservaDias = 0
		}
		if err := s.repo.UpdateTx(tx, nota); err != nil {
			return err
		}

		nota.Pago.MetodoPago = req.MetodoPago
		nota.Pago.Detalles = req.DetallesPago
		nota.Pago.Total = req.MontoFinal
		if err := s.repo.UpdatePagoTx(tx, nota.Pago); err != nil {
			return err
		}

		if err := s.vehiculoRepo.UpdateEstadoTx(tx, patente, estadoVehiculoPara(nota.Estado)); err != nil {
			return err
		}

		if estadoAnterior != nota.Estado {
			entry := model.HistorialVehiculo{
				VehiculoPatente: patente,
				Descripcion:     fmt.Sprintf("Nota de venta #%d cambio de '%s' a '%s'", nota.Folio, estadoAnterior, nota.Estado),
			}
			return s.historialRepo.CreateTx(tx, &entry)
		}
		return nil
	})
	if txErr != nil {
		return nil, traducirErrorDB(txErr)
	}

	return s.responder(ctx, nota), nil
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Deletes the nota and its pago in one transaction. The vehicle estado is NOT
// reverted — relisting is an explicit inventory decision (Reingresar).

func (s *notaVentaService) Eliminar(ctx context.Context, folio int) error {
	nota, err := s.repo.FindByFolio(ctx, folio)
	if err != nil {
		return fmt.Errorf("nota de venta #%d: %w", folio, ErrNotFound)
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.DeleteTx(tx, nota.Folio, nota.PagoID)
	})
}

func (s *notaVentaService) Obtener(ctx context.Context, folio int) (*dto.NotaVentaResponse, error) {
	nota, err := s.repo.FindByFolioResuelta(ctx, folio)
	if err != nil {
		return nil, fmt.Errorf("nota de venta #%d: %w", folio, ErrNotFound)
	}
	return notaToResponse(nota), nil
}

func (s *notaVentaService) ObtenerResuelta(ctx context.Context, folio int) (*model.NotaVenta, error) {
	nota, err := s.repo.FindByFolioResuelta(ctx, folio)
	if err != nil {
		return nil, fmt.Errorf("nota de venta #%d: %w", folio, ErrNotFound)
	}
	return nota, nil
}

func (s *notaVentaService) Listar(ctx context.Context, filter dto.NotaVentaFilter) (*dto.NotaVentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	notas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotaVentaResponse, 0, len(notas))
	for i := range notas {
		items = append(items, *notaToResponse(&notas[i]))
	}
	return &dto.NotaVentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Enviar generates the nota PDF and queues it for email delivery.
func (s *notaVentaService) Enviar(ctx context.Context, folio int, email string) error {
	nota, err := s.ObtenerResuelta(ctx, folio)
	if err != nil {
		return err
	}
	pdf, err := infra.NotaVentaPDF(nota, s.nombreAutomotora)
	if err != nil {
		return err
	}
	if s.dispatcher == nil {
		return errors.New("envio de correo no configurado")
	}
	return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail:   email,
		Subject:   fmt.Sprintf("Nota de venta #%d — %s", nota.Folio, s.nombreAutomotora),
		Body:      fmt.Sprintf("Adjuntamos la nota de venta #%d. Gracias por su compra.", nota.Folio),
		PDFBase64: base64.StdEncoding.EncodeToString(pdf),
		Filename:  fmt.Sprintf("nota_venta_%d.pdf", nota.Folio),
	})
}

// responder re-reads the nota with relations resolved; falls back to the bare
// row when the lookup fails (stub repositories in unit tests).
func (s *notaVentaService) responder(ctx context.Context, nota *model.NotaVenta) *dto.NotaVentaResponse {
	if resuelta, err := s.repo.FindByFolioResuelta(ctx, nota.Folio); err == nil {
		return notaToResponse(resuelta)
	}
	return notaToResponse(nota)
}

func notaToResponse(n *model.NotaVenta) *dto.NotaVentaResponse {
	resp := &dto.NotaVentaResponse{
		Folio:               n.Folio,
		ClienteRUT:          n.ClienteRUT,
		VehiculoPatente:     n.VehiculoPatente,
		FechaVenta:          n.FechaVenta.Format("2006-01-02"),
		MontoFinal:          n.MontoFinal,
		Estado:              n.Estado,
		MontoReserva:        n.MontoReserva,
		VigenciaReservaDias: n.VigenciaReservaDias,
		Observaciones:       n.Observaciones,
		CreatedAt:           n.CreatedAt.Format(time.RFC3339),
	}
	if n.Cliente != nil {
		resp.Cliente = n.Cliente.Nombre + " " + n.Cliente.Apellido
	}
	if n.Vehiculo != nil {
		resp.Vehiculo = fmt.Sprintf("%s %s %d", n.Vehiculo.Marca, n.Vehiculo.Modelo, n.Vehiculo.Ano)
	}
	if n.Vendedor != nil {
		resp.Vendedor = n.Vendedor.Nombre
	}
	if n.Pago != nil {
		resp.MetodoPago = n.Pago.MetodoPago
	}
	return resp
}
