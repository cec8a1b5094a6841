package pricing

import (
	"fmt"
	"strings"

	"github.com/iliyamo/kart-track-reservation/internal/model"
)

// DetailLine renders the pipe-delimited per-person record consumed by the
// notification collaborator. The shape is a compatibility surface and must
// not change:
//
//	<name>|Base:<amt>|<label>|Monto sin IVA:<amt>|IVA:<amt>|Total:<amt>
//
// with every amount formatted to 2 decimals.
func DetailLine(l model.InvoiceLine) string {
	return fmt.Sprintf("%s|Base:%.2f|%s|Monto sin IVA:%.2f|IVA:%.2f|Total:%.2f",
		l.PersonName, l.BaseAmount, l.DiscountLabel, l.NetAmount, l.TaxAmount, l.GrossAmount)
}

// FormatInvoice renders the voucher block: totals first, then one detail
// block per invoice line in processing order, terminated by a closing rule.
func FormatInvoice(inv *model.Invoice) string {
	var sb strings.Builder

	sb.WriteString("========= RESUMEN DEL COMPROBANTE =========\n")
	fmt.Fprintf(&sb, "Subtotal (sin IVA): %.2f\n", inv.NetTotal)
	fmt.Fprintf(&sb, "IVA: %.2f\n", inv.TaxTotal)
	fmt.Fprintf(&sb, "Total con IVA: %.2f\n", inv.GrossTotal)
	sb.WriteString("-------------------------------------------\n")
	sb.WriteString("Detalle por persona:\n\n")

	for _, l := range inv.Lines {
		fmt.Fprintf(&sb, "- %s\n", l.PersonName)
		fmt.Fprintf(&sb, "  Precio Base (sin IVA): %.2f\n", l.BaseAmount)
		fmt.Fprintf(&sb, "  %s\n", l.DiscountLabel)
		fmt.Fprintf(&sb, "  Monto sin IVA: %.2f\n", l.NetAmount)
		fmt.Fprintf(&sb, "  IVA: %.2f\n", l.TaxAmount)
		fmt.Fprintf(&sb, "  Total: %.2f\n\n", l.GrossAmount)
	}

	sb.WriteString("===========================================\n")
	return sb.String()
}

// FormatReservation renders the full booking summary: the reservation
// header block followed by the invoice voucher. This is the text attached
// to confirmation events.
func FormatReservation(r *model.Reservation) string {
	var sb strings.Builder

	sb.WriteString("========= INFORMACIÓN DE LA RESERVA =========\n")
	fmt.Fprintf(&sb, "Código de la reserva: %d\n", r.ID)
	fmt.Fprintf(&sb, "Fecha y hora de la reserva: %s\n", r.CreatedAt.Format("06/01/02 15:04:05"))
	fmt.Fprintf(&sb, "Fecha de inicio: %s\n", r.StartDate.Format("06/01/02"))
	fmt.Fprintf(&sb, "Hora de inicio: %s\n", r.StartTime)
	fmt.Fprintf(&sb, "Hora de fin: %s\n", r.EndTime)
	fmt.Fprintf(&sb, "Número de vueltas o tiempo máximo reservado: %d\n", r.TariffTier)
	fmt.Fprintf(&sb, "Cantidad de personas incluidas: %d\n", r.PartySize)
	fmt.Fprintf(&sb, "Nombre de la persona que hizo la reserva: %s\n", r.PrimaryClient)
	if r.Invoice != nil {
		sb.WriteString("\n")
		sb.WriteString(FormatInvoice(r.Invoice))
	}
	return sb.String()
}
