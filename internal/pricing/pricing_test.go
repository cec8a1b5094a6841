package pricing

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/kart-track-reservation/internal/model"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestBaseAndDuration(t *testing.T) {
	weekday := time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)  // Wednesday
	saturday := time.Date(2025, time.June, 7, 0, 0, 0, 0, time.UTC)
	holiday := time.Date(2025, time.September, 18, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		tier         int
		day          time.Time
		wantPrice    int
		wantDuration int
	}{
		{"tier 10 weekday", 10, weekday, 15000, 30},
		{"tier 15 weekday", 15, weekday, 20000, 35},
		{"tier 20 weekday", 20, weekday, 25000, 40},
		{"tier 10 saturday", 10, saturday, 17250, 30},
		{"tier 15 saturday", 15, saturday, 23000, 35},
		{"tier 20 holiday", 20, holiday, 28750, 40},
		{"unknown tier", 12, weekday, 0, 0},
	}
	for _, tc := range cases {
		price, dur := BaseAndDuration(tc.tier, tc.day)
		if price != tc.wantPrice || dur != tc.wantDuration {
			t.Errorf("%s: got (%d, %d), want (%d, %d)", tc.name, price, dur, tc.wantPrice, tc.wantDuration)
		}
	}
}

func TestValidTier(t *testing.T) {
	for _, tier := range []int{10, 15, 20} {
		if !ValidTier(tier) {
			t.Errorf("tier %d should be valid", tier)
		}
	}
	for _, tier := range []int{0, 5, 12, 25, -10} {
		if ValidTier(tier) {
			t.Errorf("tier %d should be invalid", tier)
		}
	}
}

func TestGroupDiscount(t *testing.T) {
	cases := []struct {
		size int
		want float64
	}{
		{1, 0}, {2, 0}, {3, 0.10}, {5, 0.10}, {6, 0.20}, {10, 0.20}, {11, 0.30}, {15, 0.30}, {16, 0},
	}
	for _, tc := range cases {
		if got := GroupDiscount(tc.size); !almost(got, tc.want) {
			t.Errorf("GroupDiscount(%d) = %v, want %v", tc.size, got, tc.want)
		}
	}
}

func TestFrequencyDiscount(t *testing.T) {
	cases := []struct {
		visits int
		want   float64
	}{
		{0, 0}, {1, 0}, {2, 0.10}, {4, 0.10}, {5, 0.20}, {6, 0.20}, {7, 0.30}, {12, 0.30},
	}
	for _, tc := range cases {
		if got := FrequencyDiscount(tc.visits); !almost(got, tc.want) {
			t.Errorf("FrequencyDiscount(%d) = %v, want %v", tc.visits, got, tc.want)
		}
	}
}

func TestBirthdayCap(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{1, 0}, {2, 0}, {3, 1}, {5, 1}, {6, 2}, {10, 2}, {11, 0}, {15, 0},
	}
	for _, tc := range cases {
		if got := BirthdayCap(tc.size); got != tc.want {
			t.Errorf("BirthdayCap(%d) = %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestComputeInvoiceSinglePerson(t *testing.T) {
	primary := Participant{Name: "Ana", Email: "ana@example.com"}
	inv := ComputeInvoice(15000, 1, 0, primary, nil, nil)

	if len(inv.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(inv.Lines))
	}
	l := inv.Lines[0]
	if l.PersonName != "Ana" || !almost(l.NetAmount, 15000) {
		t.Errorf("line = %+v, want Ana at net 15000", l)
	}
	if !almost(inv.NetTotal, 15000) || !almost(inv.TaxTotal, 2850) || !almost(inv.GrossTotal, 17850) {
		t.Errorf("totals = (%v, %v, %v), want (15000, 2850, 17850)", inv.NetTotal, inv.TaxTotal, inv.GrossTotal)
	}
}

func TestComputeInvoiceGroupWithBirthday(t *testing.T) {
	primary := Participant{Name: "Ana", Email: "ana@example.com"}
	others := []Participant{
		{Name: "Beto", Email: "beto@example.com"},
		{Name: "Caro", Email: "caro@example.com"},
		{Name: "Dino", Email: "dino@example.com"},
		{Name: "Elsa", Email: "elsa@example.com"},
	}
	birthdays := map[string]struct{}{"caro@example.com": {}}

	inv := ComputeInvoice(10000, 5, 0, primary, others, birthdays)
	if len(inv.Lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(inv.Lines))
	}

	// Non-primary participants keep request order, primary comes last.
	wantOrder := []string{"Beto", "Caro", "Dino", "Elsa", "Ana"}
	for i, l := range inv.Lines {
		if l.PersonName != wantOrder[i] {
			t.Fatalf("line %d is %q, want %q", i, l.PersonName, wantOrder[i])
		}
	}

	// Party of 5 earns a 10% group discount; Caro takes the single 50%
	// birthday slot instead.
	for i, l := range inv.Lines {
		wantNet := 9000.0
		wantLabel := "Descuento Grupal 10%"
		if l.PersonName == "Caro" {
			wantNet = 5000.0
			wantLabel = "Descuento Cumpleaños 50%"
		}
		if !almost(l.NetAmount, wantNet) || l.DiscountLabel != wantLabel {
			t.Errorf("line %d %s: net %v label %q, want %v %q", i, l.PersonName, l.NetAmount, l.DiscountLabel, wantNet, wantLabel)
		}
	}

	if !almost(inv.NetTotal, 41000) || !almost(inv.TaxTotal, 7790) || !almost(inv.GrossTotal, 48790) {
		t.Errorf("totals = (%v, %v, %v), want (41000, 7790, 48790)", inv.NetTotal, inv.TaxTotal, inv.GrossTotal)
	}
}

func TestComputeInvoiceBigPartyIgnoresBirthdays(t *testing.T) {
	primary := Participant{Name: "Ana", Email: "ana@example.com"}
	others := make([]Participant, 11)
	for i := range others {
		others[i] = Participant{Name: fmt.Sprintf("P%d", i+1), Email: fmt.Sprintf("p%d@example.com", i+1)}
	}
	// Birthday cap is zero above 10 people, so everyone gets the 30% group
	// discount, birthday candidates included.
	birthdays := map[string]struct{}{"p1@example.com": {}, "ana@example.com": {}}

	inv := ComputeInvoice(20000, 12, 0, primary, others, birthdays)
	if len(inv.Lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(inv.Lines))
	}
	for _, l := range inv.Lines {
		if !almost(l.NetAmount, 14000) || l.DiscountLabel != "Descuento Grupal 30%" {
			t.Errorf("%s: net %v label %q, want 14000 %q", l.PersonName, l.NetAmount, l.DiscountLabel, "Descuento Grupal 30%")
		}
	}
}

func TestComputeInvoicePartySizeDrivesDiscountNotLineCount(t *testing.T) {
	// The declared party size picks the discount bucket on its own; listed
	// participants only determine how many lines appear. A party of 15 with
	// one listed companion bills two people, both at the 11-15 group rate.
	primary := Participant{Name: "Ana", Email: "ana@example.com"}
	others := []Participant{{Name: "Beto", Email: "beto@example.com"}}

	inv := ComputeInvoice(20000, 15, 0, primary, others, nil)
	if len(inv.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(inv.Lines))
	}
	for _, l := range inv.Lines {
		if l.DiscountLabel != "Descuento Grupal 30%" || !almost(l.NetAmount, 14000) {
			t.Errorf("%s: net %v label %q, want 14000 at 30%%", l.PersonName, l.NetAmount, l.DiscountLabel)
		}
	}
}

func TestComputeInvoicePrimaryPrecedence(t *testing.T) {
	primary := Participant{Name: "Ana", Email: "ana@example.com"}
	others := []Participant{
		{Name: "Beto", Email: "beto@example.com"},
		{Name: "Caro", Email: "caro@example.com"},
	}

	// Birthday beats frequency: Ana has 5 visits (20%) but her birthday
	// wins the party-of-3 slot.
	inv := ComputeInvoice(10000, 3, 5, primary, others, map[string]struct{}{"ana@example.com": {}})
	last := inv.Lines[len(inv.Lines)-1]
	if last.PersonName != "Ana" || last.DiscountLabel != "Descuento Cumpleaños 50%" || !almost(last.NetAmount, 5000) {
		t.Errorf("birthday should beat frequency, got %+v", last)
	}

	// Frequency beats group: without a birthday the 20% frequency discount
	// replaces the 10% group discount on the primary line only.
	inv = ComputeInvoice(10000, 3, 5, primary, others, nil)
	last = inv.Lines[len(inv.Lines)-1]
	if last.DiscountLabel != "Descuento Frecuencia 20%" || !almost(last.NetAmount, 8000) {
		t.Errorf("frequency should beat group for the primary, got %+v", last)
	}
	for _, l := range inv.Lines[:len(inv.Lines)-1] {
		if l.DiscountLabel != "Descuento Grupal 10%" {
			t.Errorf("non-primary %s should keep the group discount, got %q", l.PersonName, l.DiscountLabel)
		}
	}
}

func TestComputeInvoiceBirthdayCapConsumedInOrder(t *testing.T) {
	primary := Participant{Name: "Ana", Email: "ana@example.com"}
	others := []Participant{
		{Name: "Beto", Email: "beto@example.com"},
		{Name: "Caro", Email: "caro@example.com"},
	}
	// Party of 3 allows one birthday discount; Beto and Ana both qualify but
	// Beto is processed first and consumes the slot, leaving Ana with her
	// next best discount.
	birthdays := map[string]struct{}{"beto@example.com": {}, "ana@example.com": {}}
	inv := ComputeInvoice(10000, 3, 0, primary, others, birthdays)

	if got := inv.Lines[0]; got.DiscountLabel != "Descuento Cumpleaños 50%" {
		t.Errorf("Beto should take the birthday slot, got %q", got.DiscountLabel)
	}
	if got := inv.Lines[2]; got.PersonName != "Ana" || got.DiscountLabel != "Descuento Grupal 10%" {
		t.Errorf("Ana should fall back to the group discount, got %+v", got)
	}
}

func TestComputeInvoiceSkipsPrimaryDuplicate(t *testing.T) {
	primary := Participant{Name: "Ana", Email: "ana@example.com"}
	others := []Participant{
		{Name: "Ana", Email: "ana@example.com"}, // duplicate of the primary
		{Name: "Beto", Email: "beto@example.com"},
	}
	inv := ComputeInvoice(10000, 2, 0, primary, others, nil)
	if len(inv.Lines) != 2 {
		t.Fatalf("duplicate primary should be skipped, got %d lines", len(inv.Lines))
	}
}

func TestDetailLine(t *testing.T) {
	l := model.InvoiceLine{
		PersonName:    "Ana",
		BaseAmount:    15000,
		DiscountLabel: "Descuento Grupal 0%",
		NetAmount:     15000,
		TaxAmount:     2850,
		GrossAmount:   17850,
	}
	want := "Ana|Base:15000.00|Descuento Grupal 0%|Monto sin IVA:15000.00|IVA:2850.00|Total:17850.00"
	if got := DetailLine(l); got != want {
		t.Errorf("DetailLine = %q, want %q", got, want)
	}
}

func TestFormatInvoice(t *testing.T) {
	inv := &model.Invoice{
		NetTotal:   15000,
		TaxTotal:   2850,
		GrossTotal: 17850,
		Lines: []model.InvoiceLine{{
			PersonName:    "Ana",
			BaseAmount:    15000,
			DiscountLabel: "Descuento Grupal 0%",
			NetAmount:     15000,
			TaxAmount:     2850,
			GrossAmount:   17850,
		}},
	}
	got := FormatInvoice(inv)

	for _, want := range []string{
		"========= RESUMEN DEL COMPROBANTE =========",
		"Subtotal (sin IVA): 15000.00",
		"IVA: 2850.00",
		"Total con IVA: 17850.00",
		"Detalle por persona:",
		"- Ana",
		"  Precio Base (sin IVA): 15000.00",
		"  Descuento Grupal 0%",
		"===========================================",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("voucher missing %q:\n%s", want, got)
		}
	}
}

func TestFormatReservation(t *testing.T) {
	created := time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)
	r := &model.Reservation{
		ID:            7,
		TariffTier:    10,
		PartySize:     1,
		CreatedAt:     created,
		StartDate:     time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC),
		StartTime:     model.NewTimeOfDay(14, 0),
		EndTime:       model.NewTimeOfDay(14, 30),
		PrimaryClient: "Ana",
		Invoice:       &model.Invoice{NetTotal: 15000, TaxTotal: 2850, GrossTotal: 17850},
	}
	got := FormatReservation(r)

	for _, want := range []string{
		"========= INFORMACIÓN DE LA RESERVA =========",
		"Código de la reserva: 7",
		"Fecha y hora de la reserva: 25/06/01 09:30:00",
		"Fecha de inicio: 25/06/04",
		"Hora de inicio: 14:00",
		"Hora de fin: 14:30",
		"Número de vueltas o tiempo máximo reservado: 10",
		"Cantidad de personas incluidas: 1",
		"Nombre de la persona que hizo la reserva: Ana",
		"========= RESUMEN DEL COMPROBANTE =========",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}
