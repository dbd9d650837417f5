package domain

import "math"

// PriceQuote is the result of evaluating an order's price inputs. All three
// amounts are in integer currency units, rounded once at the end.
type PriceQuote struct {
	Subtotal int64 `json:"subtotal"`
	Total    int64 `json:"total"`
	Discount int64 `json:"discount"`
}

// Discount describes an applied voucher. Type is DiscountPercentage or
// DiscountFixed; anything else is ignored.
type Discount struct {
	Type  string
	Value float64
}

// ComputeTotal evaluates subtotal, total and discount from the price inputs
// and an optional voucher. It is pure and safe to call repeatedly for live
// price previews. Malformed input (NaN, infinity, negatives) is treated as
// zero; the total never goes negative even for a percentage above 100 or a
// fixed discount larger than the subtotal.
func ComputeTotal(templatePrice float64, addonPrices []float64, tip float64, voucher *Discount) PriceQuote {
	subtotal := sanitize(templatePrice)
	for _, p := range addonPrices {
		subtotal += sanitize(p)
	}
	subtotal += sanitize(tip)

	total := subtotal
	if voucher != nil {
		switch voucher.Type {
		case DiscountPercentage:
			total = subtotal * (1 - sanitize(voucher.Value)/100)
		case DiscountFixed:
			total = subtotal - sanitize(voucher.Value)
		}
		if total < 0 {
			total = 0
		}
	}

	q := PriceQuote{
		Subtotal: int64(math.Round(subtotal)),
		Total:    int64(math.Round(total)),
	}
	q.Discount = q.Subtotal - q.Total
	return q
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
