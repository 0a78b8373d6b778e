package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
)

// ValidationError marks input the caller can fix; handlers map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a caller-fixable input error.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) error {
	return NewValidationError(format, args...)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type sizePayload struct {
	Name       *string  `json:"name"`
	ExtraPrice *float64 `json:"extraPrice"`
}

type toppingPayload struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

// ParseSizes decodes the JSON text form field into size variants, validating
// each entry. The first invalid entry aborts with an index-qualified message.
func ParseSizes(text string) ([]models.PizzaSize, error) {
	var payload []sizePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, validationf("sizes must be a valid JSON array of objects")
	}
	sizes := make([]models.PizzaSize, 0, len(payload))
	for i, p := range payload {
		if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
			return nil, validationf("size at index %d has empty name", i)
		}
		if !models.SizeNames[*p.Name] {
			return nil, validationf("size at index %d has invalid name %q (want Small, Medium or Large)", i, *p.Name)
		}
		if p.ExtraPrice == nil || *p.ExtraPrice < 0 {
			return nil, validationf("size at index %d has invalid extraPrice", i)
		}
		sizes = append(sizes, models.PizzaSize{Name: *p.Name, ExtraPrice: *p.ExtraPrice})
	}
	return sizes, nil
}

// ParseToppings decodes the JSON text form field into toppings with the same
// per-item validation as ParseSizes.
func ParseToppings(text string) ([]models.PizzaTopping, error) {
	var payload []toppingPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, validationf("toppings must be a valid JSON array of objects")
	}
	toppings := make([]models.PizzaTopping, 0, len(payload))
	for i, p := range payload {
		if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
			return nil, validationf("topping at index %d has empty name", i)
		}
		if p.Price == nil || *p.Price < 0 {
			return nil, validationf("topping at index %d has invalid price", i)
		}
		toppings = append(toppings, models.PizzaTopping{Name: *p.Name, Price: *p.Price})
	}
	return toppings, nil
}
