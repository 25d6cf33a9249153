package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racetracker/fantasy"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a validator with the odds and chip tags registered.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("odds", func(fl validator.FieldLevel) bool {
		_, err := fantasy.ParseOdds(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("chip", func(fl validator.FieldLevel) bool {
		_, err := fantasy.ParseChip(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator. Failures become a 400 naming each bad
// field.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "odds":
			msgs = append(msgs, field+" must be a price like 9/2, Evens or 5.5")
		case "chip":
			msgs = append(msgs, field+" must be superBoost, doubleChance or tripleThreat")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, e.Tag()))
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, "; "))
}
