package pricing

// Parameters holds the two percentages applied on top of the cost base. Values are used
// as given: zero and negative percentages are allowed.
type Parameters struct {
	CompanyMarginPercent float64
	SalesFeePercent      float64
}

// Result contains every value of the pricing cascade.
type Result struct {
	CostBase            float64 `json:"cost_base"`
	CompanyProfit       float64 `json:"company_profit"`
	PriceBeforeSalesFee float64 `json:"price_before_sales_fee"`
	SalesFee            float64 `json:"sales_fee"`
	FinalClientPrice    float64 `json:"final_client_price"`
	GrossMargin         float64 `json:"gross_margin"`
	NetMargin           float64 `json:"net_margin"`
}

// Calculate runs the pricing cascade. Every stage is computed from the previous one in a
// fixed order: cost base, company profit, price before sales fee, sales fee, final price.
func Calculate(goodsTotal, serviceTotal float64, params Parameters) Result {
	costBase := FiniteOrZero(goodsTotal + serviceTotal)
	companyProfit := FiniteOrZero(costBase * params.CompanyMarginPercent / 100)
	priceBeforeSalesFee := FiniteOrZero(costBase + companyProfit)
	salesFee := FiniteOrZero(priceBeforeSalesFee * params.SalesFeePercent / 100)
	finalClientPrice := FiniteOrZero(priceBeforeSalesFee + salesFee)

	return Result{
		CostBase:            costBase,
		CompanyProfit:       companyProfit,
		PriceBeforeSalesFee: priceBeforeSalesFee,
		SalesFee:            salesFee,
		FinalClientPrice:    finalClientPrice,
		GrossMargin:         FiniteOrZero(companyProfit + salesFee),
		NetMargin:           companyProfit,
	}
}
