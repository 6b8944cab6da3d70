package service_test

import (
	"context"
	"testing"

	"automotora/internal/dto"
	"automotora/internal/model"
	"automotora/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rutCliente = "123456785" // 12.345.678-5
	patenteA   = "ABCD12"
	patenteB   = "WXYZ89"
)

func clienteDemo() *model.Cliente {
	return &model.Cliente{RUT: rutCliente, Nombre: "Maria", Apellido: "Soto"}
}

func vehiculoDemo(patente string) *model.Vehiculo {
	costo := decimal.NewFromInt(4_000_000)
	return &model.Vehiculo{
		Patente:         patente,
		Marca:           "Toyota",
		Modelo:          "Yaris",
		Ano:             2019,
		ChasisN:         "CH-" + patente,
		MotorN:          "MT-" + patente,
		Valor:           decimal.NewFromInt(5_500_000),
		TipoAdquisicion: model.AdquisicionCompraDirecta,
		CostoCompra:     &costo,
		Estado:          model.VehiculoDisponible,
	}
}

func notaRequest(estado string) dto.NotaVentaRequest {
	return dto.NotaVentaRequest{
		ClienteRUT:      "12.345.678-5",
		VehiculoPatente: "abcd12",
		FechaVenta:      "2026-03-15",
		MontoFinal:      decimal.NewFromInt(5_200_000),
		MetodoPago:      model.PagoContado,
		Estado:          estado,
	}
}

type ventaFixture struct {
	notas      *stubNotaRepo
	clientes   *stubClienteRepo
	vehiculos  *stubVehiculoRepo
	historial  *stubHistorialRepo
	svc        service.NotaVentaService
	vendedorID uuid.UUID
}

func newVentaFixture(vehiculos ...*model.Vehiculo) *ventaFixture {
	if len(vehiculos) == 0 {
		vehiculos = []*model.Vehiculo{vehiculoDemo(patenteA)}
	}
	f := &ventaFixture{
		notas:      newStubNotaRepo(),
		clientes:   newStubClienteRepo(clienteDemo()),
		vehiculos:  newStubVehiculoRepo(vehiculos...),
		historial:  newStubHistorialRepo(),
		vendedorID: uuid.New(),
	}
	f.svc = service.NewNotaVentaService(f.notas, f.clientes, f.vehiculos, f.historial, nil, "Automotora Test")
	return f
}

func TestCrearNotaCompletada(t *testing.T) {
	f := newVentaFixture()
	ctx := context.Background()

	resp, err := f.svc.Crear(ctx, f.vendedorID, notaRequest(model.NotaCompletada))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Folio)
	assert.Equal(t, rutCliente, resp.ClienteRUT)
	assert.Equal(t, patenteA, resp.VehiculoPatente)
	assert.Equal(t, model.PagoContado, resp.MetodoPago)

	// Pago created and embedded
	nota := f.notas.notas[1]
	require.NotNil(t, nota)
	assert.Equal(t, 1, nota.PagoID)
	assert.True(t, f.notas.pagos[1].Total.Equal(decimal.NewFromInt(5_200_000)))

	// Vehicle moved to vendido
	assert.Equal(t, model.VehiculoVendido, f.vehiculos.vehiculos[patenteA].Estado)

	// One historial entry describing the creation
	require.Len(t, f.historial.entries, 1)
	assert.Equal(t, patenteA, f.historial.entries[0].VehiculoPatente)
	assert.Equal(t, "Nota de venta #1 creada con estado 'completada'", f.historial.entries[0].Descripcion)
}

func TestCrearNotaPendienteMarcaVendido(t *testing.T) {
	f := newVentaFixture()

	_, err := f.svc.Crear(context.Background(), f.vendedorID, notaRequest(model.NotaPendiente))
	require.NoError(t, err)
	assert.Equal(t, model.VehiculoVendido, f.vehiculos.vehiculos[patenteA].Estado)
}

func TestCrearNotaReservada(t *testing.T) {
	f := newVentaFixture()
	req := notaRequest(model.NotaReservada)
	req.MontoReserva = decimal.NewFromInt(500_000)
	req.VigenciaReservaDias = 10

	resp, err := f.svc.Crear(context.Background(), f.vendedorID, req)
	require.NoError(t, err)
	assert.Equal(t, model.VehiculoReservado, f.vehiculos.vehiculos[patenteA].Estado)
	assert.True(t, resp.MontoReserva.Equal(decimal.NewFromInt(500_000)))
	assert.Equal(t, 10, resp.VigenciaReservaDias)
}

func TestCrearNotaDescartaCamposDeReserva(t *testing.T) {
	f := newVentaFixture()
	req := notaRequest(model.NotaCompletada)
	req.MontoReserva = decimal.NewFromInt(500_000)
	req.VigenciaReservaDias = 10

	resp, err := f.svc.Crear(context.Background(), f.vendedorID, req)
	require.NoError(t, err)
	assert.True(t, resp.MontoReserva.IsZero())
	assert.Zero(t, resp.VigenciaReservaDias)
}

func TestCrearNotaVehiculoNoDisponible(t *testing.T) {
	v := vehiculoDemo(patenteA)
	v.Estado = model.VehiculoVendido
	f := newVentaFixture(v)

	_, err := f.svc.Crear(context.Background(), f.vendedorID, notaRequest(model.NotaCompletada))
	assert.ErrorIs(t, err, service.ErrVehicleUnavailable)
	assert.Empty(t, f.notas.notas)
	assert.Empty(t, f.historial.entries)
}

func TestCrearNotaClienteInexistente(t *testing.T) {
	f := newVentaFixture()
	req := notaRequest(model.NotaCompletada)
	req.ClienteRUT = "6-K" // valid RUT, unknown cliente

	_, err := f.svc.Crear(context.Background(), f.vendedorID, req)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCrearNotaRUTInvalido(t *testing.T) {
	f := newVentaFixture()
	req := notaRequest(model.NotaCompletada)
	req.ClienteRUT = "12345678-0"

	_, err := f.svc.Crear(context.Background(), f.vendedorID, req)
	assert.Error(t, err)
	assert.Empty(t, f.notas.notas)
}

func TestEditarCambioDeEstadoAnulada(t *testing.T) {
	f := newVentaFixture()
	ctx := context.Background()

	req := notaRequest(model.NotaReservada)
	req.MontoReserva = decimal.NewFromInt(300_000)
	req.VigenciaReservaDias = 7
	_, err := f.svc.Crear(ctx, f.vendedorID, req)
	require.NoError(t, err)
	require.Equal(t, model.VehiculoReservado, f.vehiculos.vehiculos[patenteA].Estado)

	edit := notaRequest(model.NotaAnulada)
	resp, err := f.svc.Editar(ctx, 1, edit)
	require.NoError(t, err)
	assert.Equal(t, model.NotaAnulada, resp.Estado)

	// Annulment releases the vehicle and clears the reservation fields
	assert.Equal(t, model.VehiculoDisponible, f.vehiculos.vehiculos[patenteA].Estado)
	assert.True(t, f.notas.notas[1].MontoReserva.IsZero())

	require.Len(t, f.historial.entries, 2)
	assert.Equal(t, "Nota de venta #1 cambio de 'reservada' a 'anulada'", f.historial.entries[1].Descripcion)
}

func TestEditarSinCambioDeEstadoNoAgregaHistorial(t *testing.T) {
	f := newVentaFixture()
	ctx := context.Background()

	_, err := f.svc.Crear(ctx, f.vendedorID, notaRequest(model.NotaCompletada))
	require.NoError(t, err)

	edit := notaRequest(model.NotaCompletada)
	edit.MontoFinal = decimal.NewFromInt(5_000_000)
	_, err = f.svc.Editar(ctx, 1, edit)
	require.NoError(t, err)

	assert.Len(t, f.historial.entries, 1) // only the creation entry
	assert.True(t, f.notas.pagos[1].Total.Equal(decimal.NewFromInt(5_000_000)))
}

func TestEditarVehiculoPropioExento(t *testing.T) {
	f := newVentaFixture()
	ctx := context.Background()

	_, err := f.svc.Crear(ctx, f.vendedorID, notaRequest(model.NotaCompletada))
	require.NoError(t, err)
	require.Equal(t, model.VehiculoVendido, f.vehiculos.vehiculos[patenteA].Estado)

	// The vehicle is vendido, but it belongs to this nota: edit must pass
	edit := notaRequest(model.NotaCompletada)
	edit.Observaciones = ptr("entrega coordinada")
	_, err = f.svc.Editar(ctx, 1, edit)
	assert.NoError(t, err)
}

func TestEditarCambioAVehiculoNoDisponible(t *testing.T) {
	otro := vehiculoDemo(patenteB)
	otro.Estado = model.VehiculoVendido
	f := newVentaFixture(vehiculoDemo(patenteA), otro)
	ctx := context.Background()

	_, err := f.svc.Crear(ctx, f.vendedorID, notaRequest(model.NotaCompletada))
	require.NoError(t, err)

	edit := notaRequest(model.NotaCompletada)
	edit.VehiculoPatente = patenteB
	_, err = f.svc.Editar(ctx, 1, edit)
	assert.ErrorIs(t, err, service.ErrVehicleUnavailable)
}

func TestEditarNotaInexistente(t *testing.T) {
	f := newVentaFixture()
	_, err := f.svc.Editar(context.Background(), 99, notaRequest(model.NotaCompletada))
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestEliminarNotaBorraPago(t *testing.T) {
	f := newVentaFixture()
	ctx := context.Background()

	_, err := f.svc.Crear(ctx, f.vendedorID, notaRequest(model.NotaCompletada))
	require.NoError(t, err)
	require.Len(t, f.notas.pagos, 1)

	require.NoError(t, f.svc.Eliminar(ctx, 1))
	assert.Empty(t, f.notas.notas)
	assert.Empty(t, f.notas.pagos)

	// Deleting the nota is not a relist: the vehicle stays vendido
	assert.Equal(t, model.VehiculoVendido, f.vehiculos.vehiculos[patenteA].Estado)
}

func TestEliminarNotaInexistente(t *testing.T) {
	f := newVentaFixture()
	err := f.svc.Eliminar(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func ptr(s string) *string { return &s }
