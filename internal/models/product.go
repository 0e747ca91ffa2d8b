package models

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ComponentMatchTickets is the mandatory component of a package. Its price is
// always part of the component total when the product defines it.
const ComponentMatchTickets = "matchTickets"

// Component is a named, separately priced sub-item of a product bundle,
// e.g. match tickets, flights or a hotel stay.
type Component struct {
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// EMIOptions describes the installment configuration of a product.
type EMIOptions struct {
	Available     bool            `json:"available"`
	Tenure        []int           `json:"tenure,omitempty"` // allowed tenures in months
	InterestRate  decimal.Decimal `json:"interest_rate"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
}

// EMIQuote is the result of an EMI calculation for a given tenure.
type EMIQuote struct {
	Tenure        int             `json:"tenure"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
}

// Product represents a sports/event package that can be added to a cart
type Product struct {
	ID          int                  `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	BasePrice   decimal.Decimal      `json:"base_price"`
	Category    string               `json:"category"`
	InStock     bool                 `json:"in_stock"`
	ImageURL    string               `json:"image_url"`
	EventDate   string               `json:"event_date"`
	Location    string               `json:"location"`
	Duration    string               `json:"duration"`
	Components  map[string]Component `json:"components,omitempty"`
	EMIOptions  EMIOptions           `json:"emi_options"`
}

// ProductUpdateRequest carries the fields that can be changed on an existing
// product. Nil fields are left untouched.
type ProductUpdateRequest struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	BasePrice   *decimal.Decimal      `json:"base_price,omitempty"`
	Category    *string               `json:"category,omitempty"`
	InStock     *bool                 `json:"in_stock,omitempty"`
	ImageURL    *string               `json:"image_url,omitempty"`
	EventDate   *string               `json:"event_date,omitempty"`
	Location    *string               `json:"location,omitempty"`
	Duration    *string               `json:"duration,omitempty"`
	Components  *map[string]Component `json:"components,omitempty"`
	EMIOptions  *EMIOptions           `json:"emi_options,omitempty"`
}

var pricePrinter = message.NewPrinter(language.English)

// IsAvailable returns true if the product can be purchased
func (p *Product) IsAvailable() bool {
	return p.InStock
}

// FormattedPrice returns the base price with digit grouping, e.g. "₹129,999"
func (p *Product) FormattedPrice() string {
	return FormatINR(p.BasePrice)
}

// FormatINR renders an amount in rupees with digit grouping
func FormatINR(amount decimal.Decimal) string {
	return pricePrinter.Sprintf("₹%v", number(amount))
}

// CalculateTotalPrice sums the prices of the product components covered by the
// caller's selection. The match tickets component is mandatory and is always
// included when the product defines it; every other component is added only
// when it is both selected and defined. Unknown selection keys are ignored.
// A product with no components yields zero.
func (p *Product) CalculateTotalPrice(selections map[string]bool) decimal.Decimal {
	total := decimal.Zero

	if c, ok := p.Components[ComponentMatchTickets]; ok {
		total = total.Add(c.Price)
	}

	for key, selected := range selections {
		if !selected || key == ComponentMatchTickets {
			continue
		}
		if c, ok := p.Components[key]; ok {
			total = total.Add(c.Price)
		}
	}

	return total
}

// EMICalculation returns the monthly installment quote for the given total
// amount and tenure, or nil when EMI is unavailable for this product or the
// tenure is not one of the allowed values. The monthly amount is rounded
// half-up to the nearest whole unit.
func (p *Product) EMICalculation(totalAmount decimal.Decimal, tenureMonths int) *EMIQuote {
	if !p.EMIOptions.Available || !p.allowsTenure(tenureMonths) {
		return nil
	}

	monthly := totalAmount.Div(decimal.NewFromInt(int64(tenureMonths))).Round(0)

	return &EMIQuote{
		Tenure:        tenureMonths,
		MonthlyAmount: monthly,
		TotalAmount:   totalAmount,
		InterestRate:  p.EMIOptions.InterestRate,
		ProcessingFee: p.EMIOptions.ProcessingFee,
	}
}

func (p *Product) allowsTenure(tenureMonths int) bool {
	for _, t := range p.EMIOptions.Tenure {
		if t == tenureMonths {
			return true
		}
	}
	return false
}

// ApplyUpdate overwrites the product's fields with the non-nil fields of the
// request. The merge is shallow: a supplied components map replaces the whole
// map, it is not merged key by key.
func (p *Product) ApplyUpdate(req *ProductUpdateRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.BasePrice != nil {
		p.BasePrice = *req.BasePrice
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.EventDate != nil {
		p.EventDate = *req.EventDate
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Duration != nil {
		p.Duration = *req.Duration
	}
	if req.Components != nil {
		p.Components = *req.Components
	}
	if req.EMIOptions != nil {
		p.EMIOptions = *req.EMIOptions
	}
}

// number converts a decimal amount into a value the locale-aware printer can
// apply digit grouping to. Whole amounts keep no fraction digits.
func number(d decimal.Decimal) interface{} {
	if d.IsInteger() {
		return d.IntPart()
	}
	return d.InexactFloat64()
}
