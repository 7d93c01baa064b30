package quote

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown input field")

// ServiceField names one of the service cost inputs.
type ServiceField string

const (
	ServicePricePerPoint ServiceField = "price_per_point"
	ServicePointCount    ServiceField = "point_count"
	ServiceOtherCost     ServiceField = "other_cost"
)

// ParseServiceField converts boundary input into a ServiceField.
func ParseServiceField(raw string) (ServiceField, error) {
	switch f := ServiceField(raw); f {
	case ServicePricePerPoint, ServicePointCount, ServiceOtherCost:
		return f, nil
	}
	return "", fmt.Errorf("%w: service %q", ErrUnknownField, raw)
}

// PricingField names one of the two pricing percentages.
type PricingField string

const (
	PricingCompanyMargin PricingField = "company_margin_percent"
	PricingSalesFee      PricingField = "sales_fee_percent"
)

// ParsePricingField converts boundary input into a PricingField.
func ParsePricingField(raw string) (PricingField, error) {
	switch f := PricingField(raw); f {
	case PricingCompanyMargin, PricingSalesFee:
		return f, nil
	}
	return "", fmt.Errorf("%w: pricing %q", ErrUnknownField, raw)
}
