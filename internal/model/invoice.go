package model

// Invoice is the computed, itemized pricing result for one reservation.
// Lines keep their insertion order: every participant except the primary
// client in request order, then the primary client last. Totals are summed
// over unrounded line amounts and rounded to 2 decimals only at the end.
//
// Fields:
//  ID         – primary key identifier.
//  NetTotal   – sum of line net amounts, rounded to 2 decimals.
//  TaxTotal   – 19% VAT over the net total, rounded to 2 decimals.
//  GrossTotal – net plus tax, rounded to 2 decimals.
//  Lines      – one line per participant, in processing order.
type Invoice struct {
	ID         uint64        // invoices.id
	NetTotal   float64       // invoices.net_total
	TaxTotal   float64       // invoices.tax_total
	GrossTotal float64       // invoices.gross_total
	Lines      []InvoiceLine // invoice_lines, ordered by position
}

// InvoiceLine is the per-person charge detail. Amounts are kept unrounded;
// rounding to 2 decimals happens only when a line is rendered.
//
// Fields:
//  PersonName    – participant the charge applies to.
//  BaseAmount    – per-person list price before discounts.
//  DiscountLabel – human-readable tag of the rule that applied.
//  NetAmount     – base × (1 - discount).
//  TaxAmount     – 19% VAT over the net amount.
//  GrossAmount   – net plus tax.
type InvoiceLine struct {
	ID            uint64  // invoice_lines.id
	PersonName    string  // invoice_lines.person_name
	BaseAmount    float64 // invoice_lines.base_amount
	DiscountLabel string  // invoice_lines.discount_label
	NetAmount     float64 // invoice_lines.net_amount
	TaxAmount     float64 // invoice_lines.tax_amount
	GrossAmount   float64 // invoice_lines.gross_amount
}
