package calculator

import (
	"strconv"
	"strings"

	playground "github.com/go-playground/validator/v10"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/harvestlane/backoffice/internal/validator"
	"github.com/shopspring/decimal"
)

// RawPreferences is preference input as submitted by an admin form or API client.
// Numeric fields must parse as a number or be blank.
type RawPreferences struct {
	Amount          string `json:"amount,omitempty" validate:"decimal_or_blank"`
	Percent         string `json:"percent,omitempty" validate:"decimal_or_blank"`
	FirstItem       string `json:"first_item,omitempty" validate:"decimal_or_blank"`
	AdditionalItem  string `json:"additional_item,omitempty" validate:"decimal_or_blank"`
	MaxItems        string `json:"max_items,omitempty" validate:"omitempty,number"`
	MinimalAmount   string `json:"minimal_amount,omitempty" validate:"decimal_or_blank"`
	NormalAmount    string `json:"normal_amount,omitempty" validate:"decimal_or_blank"`
	DiscountAmount  string `json:"discount_amount,omitempty" validate:"decimal_or_blank"`
	PerUnit         string `json:"per_unit,omitempty" validate:"decimal_or_blank"`
	Unit            string `json:"unit,omitempty" validate:"omitempty,oneof=kg lb"`
	TaxRate         string `json:"tax_rate,omitempty" validate:"decimal_or_blank"`
	IncludedInPrice bool   `json:"included_in_price,omitempty"`
	Currency        string `json:"currency,omitempty"`
}

// ParsePreferences validates raw input and converts it to typed preferences.
// Any field that fails to parse is reported as a configuration error.
func ParsePreferences(raw RawPreferences) (Preferences, error) {
	if err := validator.GetValidator().Struct(raw); err != nil {
		details := make(map[string]any)
		var fieldErrs playground.ValidationErrors
		if ierr.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Value()
			}
		}
		return Preferences{}, ierr.WithError(err).
			WithHint("Calculator preferences must be numeric or blank").
			WithReportableDetails(details).
			Mark(ierr.ErrConfiguration)
	}

	prefs := Preferences{
		Amount:          decimalOrZero(raw.Amount),
		Percent:         decimalOrZero(raw.Percent),
		FirstItem:       decimalOrZero(raw.FirstItem),
		AdditionalItem:  decimalOrZero(raw.AdditionalItem),
		MinimalAmount:   decimalOrZero(raw.MinimalAmount),
		NormalAmount:    decimalOrZero(raw.NormalAmount),
		DiscountAmount:  decimalOrZero(raw.DiscountAmount),
		PerUnit:         decimalOrZero(raw.PerUnit),
		Unit:            types.WeightUnit(raw.Unit),
		TaxRate:         decimalOrZero(raw.TaxRate),
		IncludedInPrice: raw.IncludedInPrice,
		Currency:        strings.ToLower(raw.Currency),
	}

	if s := strings.TrimSpace(raw.MaxItems); s != "" {
		// digits only by now, Atoi still rejects values overflowing int
		maxItems, err := strconv.Atoi(s)
		if err != nil {
			return Preferences{}, ierr.WithError(err).
				WithHint("Max items must be a whole number").
				WithReportableDetails(map[string]any{"max_items": raw.MaxItems}).
				Mark(ierr.ErrConfiguration)
		}
		prefs.MaxItems = maxItems
	}

	return prefs, nil
}

// Validate checks the preferences a given calculator kind depends on
func (c Calculator) Validate() error {
	if err := c.Type.Validate(); err != nil {
		return err
	}

	p := c.Preferences
	switch c.Type {
	case types.CalculatorTypeFlexiRate:
		if p.MaxItems < 0 {
			return ierr.NewError("max items cannot be negative").
				WithHint("Flexi rate max items must be zero or more").
				Mark(ierr.ErrConfiguration)
		}
	case types.CalculatorTypeWeight:
		if p.Unit != "" {
			if _, ok := weightUnitDivisors[p.Unit]; !ok {
				return ierr.NewErrorf("unrecognized weight unit %q", string(p.Unit)).
					WithHint("Weight calculators support kg and lb only").
					Mark(ierr.ErrConfiguration)
			}
		}
	case types.CalculatorTypeDefaultTax:
		if p.TaxRate.IsNegative() {
			return ierr.NewError("tax rate cannot be negative").
				WithHint("Tax rate must be zero or more").
				Mark(ierr.ErrConfiguration)
		}
	}
	return nil
}

func decimalOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
