// Package validation configures struct-tag validation for domain types.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/ledgerwise/internal/models"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator. Decimal fields validate as float64
// and Date fields as time.Time, so tags such as gte=0 and required apply to them.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			d, ok := field.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}
			f, _ := d.Float64()
			return f
		}, decimal.Decimal{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			d, ok := field.Interface().(models.Date)
			if !ok {
				return nil
			}
			return d.Time
		}, models.Date{})
		instance = v
	})
	return instance
}

// Struct validates s and turns tag failures into a readable message.
func Struct(s any) error {
	if err := Validator().Struct(s); err != nil {
		return errors.New(Describe(err))
	}
	return nil
}

// Describe renders validator errors as "amount must not be negative; category is required".
func Describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+" is required")
		case "gte":
			if fe.Param() == "0" {
				msgs = append(msgs, name+" must not be negative")
			} else {
				msgs = append(msgs, fmt.Sprintf("%s must be at least %s", name, fe.Param()))
			}
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", name, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", name, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", name, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
