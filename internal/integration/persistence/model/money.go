// Package model defines database models for persistence layer.
package model

import "github.com/shopspring/decimal"

// money normalizes an amount read back from the store to cents. Stores with
// floating numeric affinity may return values like 0.30000000000000004.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func moneyPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	rounded := money(*d)
	return &rounded
}
