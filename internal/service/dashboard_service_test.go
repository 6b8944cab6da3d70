package service_test

import (
	"context"
	"testing"
	"time"

	"automotora/internal/dto"
	"automotora/internal/model"
	"automotora/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completada(folio int, patente string, monto int64, fecha string) *model.NotaVenta {
	f, _ := time.Parse("2006-01-02", fecha)
	return &model.NotaVenta{
		Folio:           folio,
		ClienteRUT:      rutCliente,
		VehiculoPatente: patente,
		FechaVenta:      f,
		MontoFinal:      decimal.NewFromInt(monto),
		Estado:          model.NotaCompletada,
	}
}

func TestIngresosMargenCompraDirecta(t *testing.T) {
	notas := newStubNotaRepo()
	vehiculos := newStubVehiculoRepo(vehiculoDemo(patenteA)) // costo 4.000.000
	notas.notas[1] = completada(1, patenteA, 5_200_000, "2026-03-15")

	svc := service.NewDashboardService(notas, vehiculos, nil)
	resp, err := svc.Ingresos(context.Background(), dto.IngresosFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Cantidad)
	assert.True(t, resp.MargenTotal.Equal(decimal.NewFromInt(1_200_000)),
		"margen = monto final - costo de compra, got %s", resp.MargenTotal)
}

func TestIngresosMargenConsignacion(t *testing.T) {
	porcentual := vehiculoDemo(patenteA)
	porcentual.TipoAdquisicion = model.AdquisicionConsignacion
	porcentual.CostoCompra = nil

	minimo := vehiculoDemo(patenteB)
	minimo.TipoAdquisicion = model.AdquisicionConsignacion
	minimo.CostoCompra = nil

	notas := newStubNotaRepo()
	// 3% de 10.000.000 = 300.000 > minimo
	notas.notas[1] = completada(1, patenteA, 10_000_000, "2026-03-10")
	// 3% de 2.000.000 = 60.000 < minimo 200.000
	notas.notas[2] = completada(2, patenteB, 2_000_000, "2026-03-12")

	svc := service.NewDashboardService(notas, newStubVehiculoRepo(porcentual, minimo), nil)
	resp, err := svc.Ingresos(context.Background(), dto.IngresosFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Cantidad)
	assert.True(t, resp.MargenTotal.Equal(decimal.NewFromInt(500_000)),
		"300.000 + comision minima 200.000, got %s", resp.MargenTotal)
}

func TestIngresosAgrupaPorFechaMarcaYAdquisicion(t *testing.T) {
	directo := vehiculoDemo(patenteA) // Toyota, costo 4.000.000
	consignado := vehiculoDemo(patenteB)
	consignado.Marca = "Chevrolet"
	consignado.TipoAdquisicion = model.AdquisicionConsignacion
	consignado.CostoCompra = nil

	notas := newStubNotaRepo()
	notas.notas[1] = completada(1, patenteA, 5_000_000, "2026-03-10")
	notas.notas[2] = completada(2, patenteB, 2_000_000, "2026-03-10")
	notas.notas[3] = completada(3, patenteA, 4_500_000, "2026-03-20")
	// Fuera de rango y no completada: excluidas
	notas.notas[4] = completada(4, patenteA, 9_000_000, "2026-04-02")
	anulada := completada(5, patenteB, 9_000_000, "2026-03-11")
	anulada.Estado = model.NotaAnulada
	notas.notas[5] = anulada

	svc := service.NewDashboardService(notas, newStubVehiculoRepo(directo, consignado), nil)
	resp, err := svc.Ingresos(context.Background(), dto.IngresosFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Cantidad)

	require.Len(t, resp.PorFecha, 2)
	assert.Equal(t, "2026-03-10", resp.PorFecha[0].Clave)
	assert.Equal(t, 2, resp.PorFecha[0].Cantidad)
	assert.Equal(t, "2026-03-20", resp.PorFecha[1].Clave)

	require.Len(t, resp.PorMarca, 2)
	assert.Equal(t, "Chevrolet", resp.PorMarca[0].Clave) // sorted keys
	assert.Equal(t, "Toyota", resp.PorMarca[1].Clave)
	assert.Equal(t, 2, resp.PorMarca[1].Cantidad)

	require.Len(t, resp.PorAdquisicion, 2)
	assert.Equal(t, model.AdquisicionCompraDirecta, resp.PorAdquisicion[0].Clave)
	assert.Equal(t, model.AdquisicionConsignacion, resp.PorAdquisicion[1].Clave)
}

func TestIngresosOmiteNotaSinVehiculo(t *testing.T) {
	notas := newStubNotaRepo()
	notas.notas[1] = completada(1, patenteA, 5_200_000, "2026-03-15")
	// Completed nota whose vehicle row no longer exists: skipped, not fatal
	notas.notas[2] = completada(2, "ZZZZ99", 9_000_000, "2026-03-16")

	svc := service.NewDashboardService(notas, newStubVehiculoRepo(vehiculoDemo(patenteA)), nil)
	resp, err := svc.Ingresos(context.Background(), dto.IngresosFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Cantidad)
	assert.True(t, resp.MargenTotal.Equal(decimal.NewFromInt(1_200_000)),
		"solo la nota con vehiculo aporta margen, got %s", resp.MargenTotal)
	require.Len(t, resp.PorFecha, 1)
	assert.Equal(t, "2026-03-15", resp.PorFecha[0].Clave)
}

func TestIngresosRangoInvalido(t *testing.T) {
	svc := service.NewDashboardService(newStubNotaRepo(), newStubVehiculoRepo(), nil)
	_, err := svc.Ingresos(context.Background(), dto.IngresosFilter{Desde: "2026-03-31", Hasta: "2026-03-01"})
	assert.Error(t, err)
}

func TestIngresosRangoVacio(t *testing.T) {
	svc := service.NewDashboardService(newStubNotaRepo(), newStubVehiculoRepo(), nil)
	resp, err := svc.Ingresos(context.Background(), dto.IngresosFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)
	assert.Zero(t, resp.Cantidad)
	assert.True(t, resp.MargenTotal.IsZero())
	assert.Empty(t, resp.PorFecha)
}
