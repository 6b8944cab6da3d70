package infra

// pdf.go — A4 document generation with go-pdf/fpdf. Four documents:
//   - Nota de venta (also attached to outgoing mails)
//   - Comprobante de reserva
//   - Comprobante de devolución (nota anulada)
//   - Contrato de consignación
// All render to an in-memory byte slice so handlers can stream them and the
// email worker can attach them without touching disk.

import (
	"bytes"
	"fmt"
	"time"

	"automotora/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var etiquetasMetodoPago = map[string]string{
	model.PagoContado:           "Contado",
	model.PagoCreditoAutomotriz: "Crédito automotriz",
	model.PagoTarjetaCredito:    "Tarjeta de crédito",
	model.PagoTarjetaDebito:     "Tarjeta de débito",
}

// nuevoDocumento builds an A4 page with the dealership header and the shared
// page footer.
func nuevoDocumento(titulo, nombreAutomotora string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 9, tr(nombreAutomotora), "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, tr(titulo), "", 1, "C", false, 0, "")
		pdf.Ln(2)
		pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
		pdf.Ln(4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, tr(nombreAutomotora+" | Gracias por su compra"), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Página %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	return pdf
}

// filaDato prints one "label: value" row of a detail block.
func filaDato(pdf *fpdf.Fpdf, label, value string) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
}

func seccion(pdf *fpdf.Fpdf, titulo string) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(0, 8, tr(titulo), "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func pesos(d decimal.Decimal) string {
	return "$" + d.StringFixed(0)
}

func nombreCliente(c *model.Cliente) string {
	if c == nil {
		return "-"
	}
	return c.Nombre + " " + c.Apellido
}

func descVehiculo(v *model.Vehiculo) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s %d", v.Marca, v.Modelo, v.Ano)
}

func bloqueCliente(pdf *fpdf.Fpdf, c *model.Cliente) {
	seccion(pdf, "Datos del cliente")
	if c == nil {
		filaDato(pdf, "Cliente:", "-")
		return
	}
	filaDato(pdf, "Nombre:", nombreCliente(c))
	filaDato(pdf, "RUT:", c.RUT)
	if c.Telefono != nil {
		filaDato(pdf, "Teléfono:", *c.Telefono)
	}
	if c.Direccion != nil {
		dir := *c.Direccion
		if c.Ciudad != nil {
			dir += ", " + *c.Ciudad
		}
		filaDato(pdf, "Dirección:", dir)
	}
}

func bloqueVehiculo(pdf *fpdf.Fpdf, v *model.Vehiculo, patente string) {
	seccion(pdf, "Datos del vehículo")
	filaDato(pdf, "Patente:", patente)
	if v == nil {
		return
	}
	filaDato(pdf, "Vehículo:", descVehiculo(v))
	if v.Color != "" {
		filaDato(pdf, "Color:", v.Color)
	}
	filaDato(pdf, "N° de chasis:", v.ChasisN)
	filaDato(pdf, "N° de motor:", v.MotorN)
	filaDato(pdf, "Kilometraje:", fmt.Sprintf("%d km", v.Kilometraje))
}

func cerrar(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// NotaVentaPDF renders the sale document for a resolved nota (cliente,
// vehiculo, vendedor and pago loaded).
func NotaVentaPDF(n *model.NotaVenta, nombreAutomotora string) ([]byte, error) {
	pdf := nuevoDocumento(fmt.Sprintf("Nota de Venta N° %d", n.Folio), nombreAutomotora)

	filaDato(pdf, "Fecha de venta:", n.FechaVenta.Format("02/01/2006"))
	if n.Vendedor != nil {
		filaDato(pdf, "Vendedor:", n.Vendedor.Nombre)
	}
	filaDato(pdf, "Estado:", n.Estado)

	bloqueCliente(pdf, n.Cliente)
	bloqueVehiculo(pdf, n.Vehiculo, n.VehiculoPatente)

	seccion(pdf, "Detalle del pago")
	if n.Pago != nil {
		metodo := etiquetasMetodoPago[n.Pago.MetodoPago]
		if metodo == "" {
			metodo = n.Pago.MetodoPago
		}
		filaDato(pdf, "Método de pago:", metodo)
		if n.Pago.Detalles != nil {
			filaDato(pdf, "Detalles:", *n.Pago.Detalles)
		}
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(55, 9, "MONTO FINAL:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, pesos(n.MontoFinal), "T", 1, "R", false, 0, "")

	if n.Observaciones != nil && *n.Observaciones != "" {
		seccion(pdf, "Observaciones")
		pdf.SetFont("Helvetica", "", 10)
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.MultiCell(0, 6, tr(*n.Observaciones), "", "L", false)
	}
	return cerrar(pdf)
}

// ReservaPDF renders the reservation receipt: down payment, validity window
// and the computed expiry date.
func ReservaPDF(n *model.NotaVenta, nombreAutomotora string) ([]byte, error) {
	pdf := nuevoDocumento(fmt.Sprintf("Comprobante de Reserva — Nota N° %d", n.Folio), nombreAutomotora)

	filaDato(pdf, "Fecha de reserva:", n.FechaVenta.Format("02/01/2006"))
	bloqueCliente(pdf, n.Cliente)
	bloqueVehiculo(pdf, n.Vehiculo, n.VehiculoPatente)

	seccion(pdf, "Condiciones de la reserva")
	filaDato(pdf, "Monto de reserva:", pesos(n.MontoReserva))
	filaDato(pdf, "Precio acordado:", pesos(n.MontoFinal))
	filaDato(pdf, "Saldo pendiente:", pesos(n.MontoFinal.Sub(n.MontoReserva)))
	filaDato(pdf, "Vigencia:", fmt.Sprintf("%d días", n.VigenciaReservaDias))
	vence := n.FechaVenta.AddDate(0, 0, n.VigenciaReservaDias)
	filaDato(pdf, "Vence el:", vence.Format("02/01/2006"))

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.MultiCell(0, 5, tr("El vehículo permanecerá reservado hasta la fecha de vencimiento indicada. "+
		"Vencido el plazo sin concretarse la compra, el vehículo vuelve a estar disponible para la venta."),
		"", "L", false)
	return cerrar(pdf)
}

// DevolucionPDF renders the refund receipt for an annulled nota.
func DevolucionPDF(n *model.NotaVenta, nombreAutomotora string) ([]byte, error) {
	pdf := nuevoDocumento(fmt.Sprintf("Comprobante de Devolución — Nota N° %d", n.Folio), nombreAutomotora)

	filaDato(pdf, "Fecha de emisión:", time.Now().Format("02/01/2006"))
	filaDato(pdf, "Fecha de la venta:", n.FechaVenta.Format("02/01/2006"))
	bloqueCliente(pdf, n.Cliente)
	bloqueVehiculo(pdf, n.Vehiculo, n.VehiculoPatente)

	seccion(pdf, "Detalle de la devolución")
	monto := n.MontoFinal
	if !n.MontoReserva.IsZero() {
		monto = n.MontoReserva
		filaDato(pdf, "Concepto:", "Devolución de monto de reserva")
	} else {
		filaDato(pdf, "Concepto:", "Devolución por anulación de venta")
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(55, 9, "MONTO A DEVOLVER:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, pesos(monto), "T", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(85, 7, "", "T", 0, "C", false, 0, "")
	pdf.CellFormat(10, 7, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(85, 7, "", "T", 1, "C", false, 0, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.CellFormat(85, 5, tr("Firma cliente"), "", 0, "C", false, 0, "")
	pdf.CellFormat(10, 5, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(85, 5, tr("Firma automotora"), "", 1, "C", false, 0, "")
	return cerrar(pdf)
}

// ContratoConsignacionPDF renders the consignment contract between the
// dealership and the vehicle owner (v.Dueno must be preloaded).
func ContratoConsignacionPDF(v *model.Vehiculo, nombreAutomotora string) ([]byte, error) {
	pdf := nuevoDocumento("Contrato de Consignación", nombreAutomotora)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	filaDato(pdf, "Fecha:", time.Now().Format("02/01/2006"))

	seccion(pdf, "Datos del propietario")
	if v.Dueno != nil {
		filaDato(pdf, "Nombre:", nombreCliente(v.Dueno))
		filaDato(pdf, "RUT:", v.Dueno.RUT)
		if v.Dueno.Telefono != nil {
			filaDato(pdf, "Teléfono:", *v.Dueno.Telefono)
		}
	} else if v.DuenoRUT != nil {
		filaDato(pdf, "RUT:", *v.DuenoRUT)
	}

	bloqueVehiculo(pdf, v, v.Patente)

	seccion(pdf, "Condiciones")
	filaDato(pdf, "Precio de venta:", pesos(v.Valor))
	if v.PrecioDueno != nil {
		filaDato(pdf, "Monto para el propietario:", pesos(*v.PrecioDueno))
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, tr("El propietario entrega el vehículo individualizado en este contrato a "+
		nombreAutomotora+" para su venta en consignación. La automotora se obliga a exhibir y ofrecer "+
		"el vehículo, y a rendir al propietario el monto acordado una vez concretada la venta. "+
		"Los gastos de transferencia son de cargo del comprador."),
		"", "L", false)

	pdf.Ln(14)
	pdf.CellFormat(85, 7, "", "T", 0, "C", false, 0, "")
	pdf.CellFormat(10, 7, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(85, 7, "", "T", 1, "C", false, 0, "")
	pdf.CellFormat(85, 5, tr("Firma propietario"), "", 0, "C", false, 0, "")
	pdf.CellFormat(10, 5, "", "", 0, "C", false, 0, "")
	pdf.CellFormat(85, 5, tr("Firma automotora"), "", 1, "C", false, 0, "")
	return cerrar(pdf)
}
