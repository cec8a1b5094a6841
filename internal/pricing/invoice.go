package pricing

import (
	"fmt"
	"math"

	"github.com/iliyamo/kart-track-reservation/internal/model"
)

// Participant identifies one person in the booking party.
type Participant struct {
	Name  string
	Email string
}

// GroupDiscount returns the discount fraction earned by the size of the
// party: 10% for 3-5 people, 20% for 6-10, 30% for 11-15, none otherwise.
func GroupDiscount(partySize int) float64 {
	switch {
	case partySize >= 3 && partySize <= 5:
		return 0.10
	case partySize >= 6 && partySize <= 10:
		return 0.20
	case partySize >= 11 && partySize <= 15:
		return 0.30
	}
	return 0
}

// FrequencyDiscount returns the discount fraction earned by the primary
// client's visits in the current month: 10% for 2-4 visits, 20% for 5-6,
// 30% for 7 or more. It applies only to the primary client's line.
func FrequencyDiscount(monthlyVisits int) float64 {
	switch {
	case monthlyVisits >= 2 && monthlyVisits <= 4:
		return 0.10
	case monthlyVisits >= 5 && monthlyVisits <= 6:
		return 0.20
	case monthlyVisits >= 7:
		return 0.30
	}
	return 0
}

// BirthdayCap returns how many participants may receive the 50% birthday
// discount: one for parties of 3-5, two for 6-10, none otherwise. Parties
// above 10 get no birthday benefit at all.
func BirthdayCap(partySize int) int {
	switch {
	case partySize >= 3 && partySize <= 5:
		return 1
	case partySize >= 6 && partySize <= 10:
		return 2
	}
	return 0
}

// ComputeInvoice prices one reservation. Every participant pays the same
// base price minus exactly one discount: birthday (50%, capped by party
// size) beats frequency (primary client only), which beats the group
// discount. Non-primary participants are processed in request order; the
// primary client is processed last so group members consume the birthday
// cap first. birthdays holds the emails already validated as matching the
// booking date's month and day.
//
// Line amounts stay unrounded; the three totals are rounded to 2 decimals
// after summation.
func ComputeInvoice(basePrice, partySize, monthlyVisits int, primary Participant, others []Participant, birthdays map[string]struct{}) *model.Invoice {
	groupDisc := GroupDiscount(partySize)
	freqDisc := FrequencyDiscount(monthlyVisits)
	cap := BirthdayCap(partySize)

	base := float64(basePrice)
	birthdaysUsed := 0
	netTotal := 0.0
	lines := make([]model.InvoiceLine, 0, len(others)+1)

	addLine := func(name string, discount float64, label string) {
		net := base * (1 - discount)
		lines = append(lines, model.InvoiceLine{
			PersonName:    name,
			BaseAmount:    base,
			DiscountLabel: label,
			NetAmount:     net,
			TaxAmount:     net * vatRate,
			GrossAmount:   net * (1 + vatRate),
		})
		netTotal += net
	}

	for _, p := range others {
		if p.Name == primary.Name && p.Email == primary.Email {
			continue
		}
		if _, ok := birthdays[p.Email]; ok && birthdaysUsed < cap {
			birthdaysUsed++
			addLine(p.Name, 0.50, "Descuento Cumpleaños 50%")
		} else {
			addLine(p.Name, groupDisc, groupLabel(groupDisc))
		}
	}

	// Primary client last: birthday beats frequency beats group.
	if _, ok := birthdays[primary.Email]; ok && birthdaysUsed < cap {
		birthdaysUsed++
		addLine(primary.Name, 0.50, "Descuento Cumpleaños 50%")
	} else if freqDisc > 0 {
		addLine(primary.Name, freqDisc, fmt.Sprintf("Descuento Frecuencia %d%%", int(freqDisc*100)))
	} else {
		addLine(primary.Name, groupDisc, groupLabel(groupDisc))
	}

	taxTotal := netTotal * vatRate
	return &model.Invoice{
		NetTotal:   round2(netTotal),
		TaxTotal:   round2(taxTotal),
		GrossTotal: round2(netTotal + taxTotal),
		Lines:      lines,
	}
}

func groupLabel(discount float64) string {
	return fmt.Sprintf("Descuento Grupal %d%%", int(discount*100))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
