package pricing

// ServiceInput holds the three optional service cost fields.
type ServiceInput struct {
	PricePerPoint Field `json:"price_per_point"`
	PointCount    Field `json:"point_count"`
	OtherCost     Field `json:"other_cost"`
}

// ServiceCost returns price per point times point count plus the flat extra charge.
func ServiceCost(in ServiceInput) float64 {
	return FiniteOrZero(in.PricePerPoint.Value*in.PointCount.Value + in.OtherCost.Value)
}
