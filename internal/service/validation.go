package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"graphql-crm/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// phonePattern accepts international numbers with an optional leading '+'
// and '1', or the dashed 3-3-4 form.
var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$|^\d{3}-\d{3}-\d{4}$`)

// newValidator builds the shared input validator. Decimals are validated
// through their float value so the numeric tags apply to prices.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// fieldErrors maps a field/tag pair to the client-facing domain error.
// Keys qualified with the struct name win over bare field keys.
var fieldErrors = map[string]*model.DomainError{
	"Name.required":          model.ErrNameRequired,
	"CustomerInput.Name.max": model.ErrCustomerNameLong,
	"ProductInput.Name.max":  model.ErrProductNameLong,
	"Email.required":         model.ErrEmailRequired,
	"Email.max":              model.ErrEmailTooLong,
	"Email.email":            model.ErrInvalidEmail,
	"Phone.phone":            model.ErrInvalidPhone,
	"Price.gt":               model.ErrInvalidPrice,
	"Price.lte":              model.ErrPriceTooLarge,
	"Stock.gte":              model.ErrNegativeStock,
}

func lookupFieldError(fe validator.FieldError) (*model.DomainError, bool) {
	if derr, ok := fieldErrors[fe.StructNamespace()+"."+fe.Tag()]; ok {
		return derr, true
	}
	derr, ok := fieldErrors[fe.Field()+"."+fe.Tag()]
	return derr, ok
}

// validateStruct runs the struct tags on input and converts every failure
// into a domain error, keeping field declaration order.
func validateStruct(v *validator.Validate, input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	out := make(model.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		if derr, ok := lookupFieldError(fe); ok {
			out = append(out, derr)
			continue
		}
		out = append(out, model.NewDomainError(model.ErrCodeValidation, fmt.Sprintf("%s is invalid", fe.Field())))
	}

	return out
}

func normalizeCustomerInput(in model.CustomerInput) model.CustomerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone == "" {
			in.Phone = nil
		} else {
			in.Phone = &phone
		}
	}
	return in
}

func normalizeProductInput(in model.ProductInput) model.ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = in.Price.Round(2)
	return in
}
