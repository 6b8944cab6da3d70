package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"automotora/internal/dto"
	"automotora/internal/model"
	"automotora/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Commission schedule for consigned vehicles: 3% of the final price, never
// below the flat minimum.
var (
	tasaConsignacion = decimal.RequireFromString("0.03")
	comisionMinima   = decimal.NewFromInt(200000)
)

const cacheTTLIngresos = 60 * time.Second

type DashboardService interface {
	Ingresos(ctx context.Context, filter dto.IngresosFilter) (*dto.IngresosResponse, error)
}

type dashboardService struct {
	notaRepo     repository.NotaVentaRepository
	vehiculoRepo repository.VehiculoRepository
	rdb          *redis.Client
}

// NewDashboardService builds the revenue aggregator. rdb may be nil, which
// disables the cache.
func NewDashboardService(notaRepo repository.NotaVentaRepository, vehiculoRepo repository.VehiculoRepository, rdb *redis.Client) DashboardService {
	return &dashboardService{notaRepo: notaRepo, vehiculoRepo: vehiculoRepo, rdb: rdb}
}

// margenNota computes the dealership margin for one completed sale. Direct
// purchases earn price minus acquisition cost; consignments earn the larger of
// 3% of the final price and the flat minimum commission.
func margenNota(montoFinal decimal.Decimal, v *model.Vehiculo) decimal.Decimal {
	if v.TipoAdquisicion == model.AdquisicionConsignacion {
		comision := montoFinal.Mul(tasaConsignacion)
		if comision.LessThan(comisionMinima) {
			return comisionMinima
		}
		return comision
	}
	costo := decimal.Zero
	if v.CostoCompra != nil {
		costo = *v.CostoCompra
	}
	return montoFinal.Sub(costo)
}

func (s *dashboardService) Ingresos(ctx context.Context, filter dto.IngresosFilter) (*dto.IngresosResponse, error) {
	desde, err := time.Parse("2006-01-02", filter.Desde)
	if err != nil {
		return nil, fmt.Errorf("desde invalida: %w", err)
	}
	hasta, err := time.Parse("2006-01-02", filter.Hasta)
	if err != nil {
		return nil, fmt.Errorf("hasta invalida: %w", err)
	}
	if hasta.Before(desde) {
		return nil, fmt.Errorf("rango invalido: hasta anterior a desde: %w", ErrIntegrityViolation)
	}

	cacheKey := fmt.Sprintf("dashboard:ingresos:%s:%s", filter.Desde, filter.Hasta)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.IngresosResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	notas, err := s.notaRepo.ListCompletadasEnRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	resp := &dto.IngresosResponse{
		Desde:       filter.Desde,
		Hasta:       filter.Hasta,
		MargenTotal: decimal.Zero,
	}

	porFecha := map[string]*dto.GrupoIngreso{}
	porMarca := map[string]*dto.GrupoIngreso{}
	porAdquisicion := map[string]*dto.GrupoIngreso{}

	for i := range notas {
		n := &notas[i]
		v, err := s.vehiculoRepo.FindByPatente(ctx, n.VehiculoPatente)
		if err != nil {
			// A nota referencing a missing vehicle is a data defect; skip
			// rather than fail the whole dashboard.
			log.Warn().Int("folio", n.Folio).Str("patente", n.VehiculoPatente).
				Msg("dashboard: nota completada sin vehiculo")
			continue
		}

		margen := margenNota(n.MontoFinal, v)
		resp.Cantidad++
		resp.MargenTotal = resp.MargenTotal.Add(margen)

		acumular(porFecha, n.FechaVenta.Format("2006-01-02"), margen)
		acumular(porMarca, v.Marca, margen)
		acumular(porAdquisicion, v.TipoAdquisicion, margen)
	}

	resp.PorFecha = ordenarGrupos(porFecha)
	resp.PorMarca = ordenarGrupos(porMarca)
	resp.PorAdquisicion = ordenarGrupos(porAdquisicion)

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, cacheTTLIngresos).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard: cache write failed")
			}
		}
	}
	return resp, nil
}

func acumular(grupos map[string]*dto.GrupoIngreso, clave string, margen decimal.Decimal) {
	g, ok := grupos[clave]
	if !ok {
		g = &dto.GrupoIngreso{Clave: clave, Margen: decimal.Zero}
		grupos[clave] = g
	}
	g.Cantidad++
	g.Margen = g.Margen.Add(margen)
}

// ordenarGrupos flattens a bucket map into a deterministic, key-sorted slice.
func ordenarGrupos(grupos map[string]*dto.GrupoIngreso) []dto.GrupoIngreso {
	claves := make([]string, 0, len(grupos))
	for k := range grupos {
		claves = append(claves, k)
	}
	sort.Strings(claves)
	out := make([]dto.GrupoIngreso, 0, len(claves))
	for _, k := range claves {
		out = append(out, *grupos[k])
	}
	return out
}
