package pricing

import "github.com/shopspring/decimal"

// GoodsTotals holds the per-category and grand goods cost.
type GoodsTotals struct {
	Hardware float64 `json:"hardware"`
	Material float64 `json:"material"`
	Grand    float64 `json:"grand"`
}

// Sum adds values exactly in decimal and converts back once, so the result does not
// depend on the order of values.
func Sum(values []float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
	}

	f, _ := total.Float64()
	return FiniteOrZero(f)
}

// AggregateGoods totals the hardware and material subtotals.
func AggregateGoods(hardware, material []float64) GoodsTotals {
	totals := GoodsTotals{
		Hardware: Sum(hardware),
		Material: Sum(material),
	}
	totals.Grand = Sum([]float64{totals.Hardware, totals.Material})
	return totals
}
