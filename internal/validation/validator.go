// Package validation checks service inputs with struct tags before any
// storage write happens.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/models"
)

// Validator wraps a configured validator.Validate. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that knows the pantry enums:
// `category`, `day`, `meal_type` and `suggestion_type`.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name so messages match what the user sees.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		return models.Day(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("meal_type", func(fl validator.FieldLevel) bool {
		return models.MealType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("suggestion_type", func(fl validator.FieldLevel) bool {
		return models.MealType(fl.Field().String()).Suggestable()
	})

	return &Validator{validate: v}
}

// Struct validates s and returns models.ValidationErrors on failure.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating input: %w", err)
	}

	out := make(models.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &models.ValidationError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "category":
		return fmt.Sprintf("must be one of %s", join(models.Categories))
	case "day":
		return fmt.Sprintf("must be one of %s", join(models.Days))
	case "meal_type":
		return fmt.Sprintf("must be one of %s", join(models.MealTypes))
	case "suggestion_type":
		return fmt.Sprintf("must be one of %s", join(models.SuggestionMealTypes))
	case "dive":
		return "contains an invalid value"
	default:
		return "is invalid"
	}
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
