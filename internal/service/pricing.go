package service

import (
	"math"

	"fachowiec/backend/internal/model"
)

// DefaultTaxRate is the VAT percentage assumed when a caller does not supply
// one.
const DefaultTaxRate = 23

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// TotalsFromItems sums quantity*rate over the items and applies VAT on top.
// Every monetary output is rounded to the cent, half away from zero.
func TotalsFromItems(items []model.EstimateItem, taxRate float64) model.Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.Rate
	}
	tax := subtotal * (taxRate / 100)
	total := subtotal + tax

	return model.Totals{
		Subtotal: round2(subtotal),
		Tax:      round2(tax),
		Total:    round2(total),
		TaxRate:  taxRate,
	}
}

// TotalsFromGross works backwards from a tax-inclusive amount.
func TotalsFromGross(gross, taxRate float64) model.Totals {
	subtotal := gross / (1 + taxRate/100)
	tax := gross - subtotal

	return model.Totals{
		Subtotal: round2(subtotal),
		Tax:      round2(tax),
		Total:    round2(gross),
		TaxRate:  taxRate,
	}
}

// TotalsFromNet applies VAT on top of a net amount.
func TotalsFromNet(net, taxRate float64) model.Totals {
	tax := net * (taxRate / 100)
	total := net + tax

	return model.Totals{
		Subtotal: round2(net),
		Tax:      round2(tax),
		Total:    round2(total),
		TaxRate:  taxRate,
	}
}
