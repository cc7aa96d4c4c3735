package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CustomValidator wraps go-playground/validator with the rules and messages
// used by the product form.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator with the product field rules registered.
func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields under their JSON names so error keys line up with the
	// form's error placeholders.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank rejects values that are empty after trimming.
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// amount accepts non-negative decimal numbers, zero included.
	v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})

	return &CustomValidator{validator: v}
}

// Validate checks i and returns a field-name to message mapping for every
// failed rule. An empty map means i is valid.
func (cv *CustomValidator) Validate(i interface{}) map[string]string {
	fieldErrors := make(map[string]string)

	err := cv.validator.Struct(i)
	if err == nil {
		return fieldErrors
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			fieldErrors[e.Field()] = messageFor(e)
		}
	}
	return fieldErrors
}

func messageFor(e validator.FieldError) string {
	switch e.Field() {
	case "name":
		return "Name is required"
	case "price":
		if e.Tag() == "required" {
			return "Price is required"
		}
		return "Price must be a valid positive number"
	case "image":
		return "Image must be a valid URL"
	case "availability_date":
		return "Invalid date format"
	}
	return e.Field() + " is invalid"
}
