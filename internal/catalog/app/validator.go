package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dejobratic/vestuario/internal/catalog/domain"
	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator checks request payloads and reports failures in Portuguese,
// naming fields by their JSON name.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(domain.Date); ok {
			return d.Time
		}
		return nil
	}, domain.Date{})

	return &Validator{validate: v}
}

// Struct validates payload and returns a ValidationError listing every failed field.
func (v *Validator) Struct(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ports.Validation(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return ports.Validation(strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("o campo %s é obrigatório", fe.Field())
	case "gte":
		return fmt.Sprintf("o campo %s deve ser maior ou igual a %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("o campo %s deve ser maior que %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("o campo %s é inválido", fe.Field())
	}
}
