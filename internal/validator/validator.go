package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

// NewValidator builds the shared validator and registers the decimal_or_blank tag
// used by calculator preferences.
func NewValidator() *validator.Validate {
	validate = validator.New()
	_ = validate.RegisterValidation("decimal_or_blank", isDecimalOrBlank)
	return validate
}

func GetValidator() *validator.Validate {
	if validate == nil {
		return NewValidator()
	}
	return validate
}

// isDecimalOrBlank accepts an empty string or anything shopspring/decimal can parse
func isDecimalOrBlank(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	_, err := decimal.NewFromString(raw)
	return err == nil
}

func ValidateRequest(req interface{}) error {
	if err := GetValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
