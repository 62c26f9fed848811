// Package pricing computes cart totals. It has no I/O and works purely on
// decimal amounts.
package pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is one cart line with the food metadata needed for pricing.
type Line struct {
	ItemID          uint
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountCap     decimal.Decimal
}

// Charges are the fixed surcharges added to every order.
type Charges struct {
	Delivery decimal.Decimal
	Platform decimal.Decimal
}

// DefaultCharges returns the standard delivery (30) and platform (5) charges.
func DefaultCharges() Charges {
	return Charges{
		Delivery: decimal.NewFromInt(30),
		Platform: decimal.NewFromInt(5),
	}
}

type LineBreakdown struct {
	ItemID              uint            `json:"itemId"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	UnitDiscount        decimal.Decimal `json:"unitDiscount"`
	DiscountedUnitPrice decimal.Decimal `json:"discountedUnitPrice"`
	LineTotal           decimal.Decimal `json:"lineTotal"`
}

type Breakdown struct {
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	TotalDiscount  decimal.Decimal `json:"totalDiscount"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	PlatformCharge decimal.Decimal `json:"platformCharge"`
	FinalPrice     decimal.Decimal `json:"finalPrice"`
	Lines          []LineBreakdown `json:"lines"`
}

// UnitDiscount returns min(unitPrice*percent/100, cap) without rounding.
// Negative percent, cap or price never produce a negative discount.
func UnitDiscount(unitPrice, percent, cap decimal.Decimal) decimal.Decimal {
	if percent.IsNegative() || cap.IsNegative() || unitPrice.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(unitPrice.Mul(percent).Div(hundred), cap)
}

// Calculate prices the given lines. Lines with a non-positive quantity add
// nothing. An empty cart still carries both charges. Amounts accumulate
// exactly; only the totals are rounded to cents, and FinalPrice is rounded
// from the exact sum rather than from the rounded totals.
func Calculate(lines []Line, charges Charges) Breakdown {
	totalPrice := decimal.Zero
	totalDiscount := decimal.Zero
	breakdownLines := make([]LineBreakdown, 0, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		discount := UnitDiscount(line.UnitPrice, line.DiscountPercent, line.DiscountCap)
		discounted := line.UnitPrice.Sub(discount)

		totalPrice = totalPrice.Add(line.UnitPrice.Mul(qty))
		totalDiscount = totalDiscount.Add(discount.Mul(qty))

		breakdownLines = append(breakdownLines, LineBreakdown{
			ItemID:              line.ItemID,
			Quantity:            line.Quantity,
			UnitPrice:           line.UnitPrice,
			UnitDiscount:        discount,
			DiscountedUnitPrice: discounted,
			LineTotal:           discounted.Mul(qty),
		})
	}

	delivery := nonNegative(charges.Delivery)
	platform := nonNegative(charges.Platform)
	final := totalPrice.Sub(totalDiscount).Add(delivery).Add(platform)

	return Breakdown{
		TotalPrice:     totalPrice.Round(2),
		TotalDiscount:  totalDiscount.Round(2),
		DeliveryCharge: delivery.Round(2),
		PlatformCharge: platform.Round(2),
		FinalPrice:     final.Round(2),
		Lines:          breakdownLines,
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
