// Package quote holds a live quotation and keeps its computed figures in step with
// every edit.
package quote

import (
	"fmt"
	"sync"

	"github.com/Simplici0/quote.works/internal/ledger"
	"github.com/Simplici0/quote.works/internal/logger"
	"github.com/Simplici0/quote.works/internal/pricing"
)

// State is the consistency state of a session's aggregates.
type State int

const (
	Stable State = iota
	Dirty
)

func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "stable"
}

// PricingInput holds the raw and parsed pricing percentages.
type PricingInput struct {
	CompanyMarginPercent pricing.Field `json:"company_margin_percent"`
	SalesFeePercent      pricing.Field `json:"sales_fee_percent"`
}

// CategorySnapshot is the computed view of one ledger.
type CategorySnapshot struct {
	Items []ledger.LineItem `json:"items"`
	Total float64           `json:"total"`
}

// Snapshot is the read-only output of a session. Revision increases by one per
// recompute.
type Snapshot struct {
	Revision     uint64               `json:"revision"`
	Hardware     CategorySnapshot     `json:"hardware"`
	Material     CategorySnapshot     `json:"material"`
	GoodsTotal   float64              `json:"goods_total"`
	Service      pricing.ServiceInput `json:"service"`
	ServiceTotal float64              `json:"service_total"`
	Pricing      PricingInput         `json:"pricing"`
	Result       pricing.Result       `json:"result"`
}

func (s Snapshot) clone() Snapshot {
	s.Hardware.Items = append([]ledger.LineItem{}, s.Hardware.Items...)
	s.Material.Items = append([]ledger.LineItem{}, s.Material.Items...)
	return s
}

// Session is one quotation being edited. Each mutating method updates the inputs and
// rebuilds every aggregate before the lock is released, so Snapshot never sees stale
// figures.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	ledgers  map[ledger.Category]*ledger.Ledger
	service  pricing.ServiceInput
	params   PricingInput
	snapshot Snapshot
	log      *logger.Logger
}

// NewSession returns an empty, already computed session.
func NewSession(id string, log *logger.Logger) *Session {
	s := &Session{
		ID:      id,
		ledgers: make(map[ledger.Category]*ledger.Ledger, len(ledger.Categories)),
		log:     log.With("session", id),
	}
	for _, c := range ledger.Categories {
		s.ledgers[c] = ledger.New(c)
	}

	s.mu.Lock()
	s.recompute()
	s.mu.Unlock()
	return s
}

// Snapshot returns the current computed figures.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.clone()
}

// State reports whether the aggregates are consistent with the inputs.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AddItem appends an empty item to the ledger of category.
func (s *Session) AddItem(category ledger.Category) (ledger.LineItem, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.ledger(category)
	if err != nil {
		return ledger.LineItem{}, s.snapshot.clone(), err
	}

	s.state = Dirty
	item := l.Add()
	s.recompute()
	return item, s.snapshot.clone(), nil
}

// EditItem sets one field of an item. An unknown id changes nothing and reports false.
func (s *Session) EditItem(category ledger.Category, id string, field ledger.ItemField, raw string) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.ledger(category)
	if err != nil {
		return s.snapshot.clone(), false, err
	}

	s.state = Dirty
	ok, err := l.Edit(id, field, raw)
	if err != nil || !ok {
		// Nothing changed, the previous snapshot still holds.
		s.state = Stable
		return s.snapshot.clone(), false, err
	}
	s.recompute()
	return s.snapshot.clone(), true, nil
}

// RemoveItem deletes an item. An unknown id changes nothing and reports false.
func (s *Session) RemoveItem(category ledger.Category, id string) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.ledger(category)
	if err != nil {
		return s.snapshot.clone(), false, err
	}

	s.state = Dirty
	if !l.Remove(id) {
		s.state = Stable
		return s.snapshot.clone(), false, nil
	}
	s.recompute()
	return s.snapshot.clone(), true, nil
}

// SetServiceInput replaces one service cost input.
func (s *Session) SetServiceInput(field ServiceField, raw string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *pricing.Field
	switch field {
	case ServicePricePerPoint:
		target = &s.service.PricePerPoint
	case ServicePointCount:
		target = &s.service.PointCount
	case ServiceOtherCost:
		target = &s.service.OtherCost
	default:
		return s.snapshot.clone(), fmt.Errorf("%w: service %q", ErrUnknownField, field)
	}

	s.state = Dirty
	*target = pricing.NewField(raw)
	s.recompute()
	return s.snapshot.clone(), nil
}

// SetPricingParameter replaces one pricing percentage.
func (s *Session) SetPricingParameter(field PricingField, raw string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *pricing.Field
	switch field {
	case PricingCompanyMargin:
		target = &s.params.CompanyMarginPercent
	case PricingSalesFee:
		target = &s.params.SalesFeePercent
	default:
		return s.snapshot.clone(), fmt.Errorf("%w: pricing %q", ErrUnknownField, field)
	}

	s.state = Dirty
	*target = pricing.NewField(raw)
	s.recompute()
	return s.snapshot.clone(), nil
}

func (s *Session) ledger(category ledger.Category) (*ledger.Ledger, error) {
	l, ok := s.ledgers[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ledger.ErrUnknownCategory, category)
	}
	return l, nil
}

// recompute rebuilds every aggregate from the current leaf values. Callers hold s.mu.
func (s *Session) recompute() {
	hardware := s.ledgers[ledger.Hardware]
	material := s.ledgers[ledger.Material]

	goods := pricing.AggregateGoods(hardware.Subtotals(), material.Subtotals())
	serviceTotal := pricing.ServiceCost(s.service)
	result := pricing.Calculate(goods.Grand, serviceTotal, pricing.Parameters{
		CompanyMarginPercent: s.params.CompanyMarginPercent.Value,
		SalesFeePercent:      s.params.SalesFeePercent.Value,
	})

	s.snapshot = Snapshot{
		Revision:     s.snapshot.Revision + 1,
		Hardware:     CategorySnapshot{Items: hardware.Items(), Total: goods.Hardware},
		Material:     CategorySnapshot{Items: material.Items(), Total: goods.Material},
		GoodsTotal:   goods.Grand,
		Service:      s.service,
		ServiceTotal: serviceTotal,
		Pricing:      s.params,
		Result:       result,
	}
	s.state = Stable

	s.log.Debug("quote recomputed",
		"revision", s.snapshot.Revision,
		"goods_total", goods.Grand,
		"service_total", serviceTotal,
		"final_client_price", result.FinalClientPrice,
	)
}
