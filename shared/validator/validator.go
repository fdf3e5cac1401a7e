package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"locally/shared/constant"
	"locally/shared/failure"
)

var validate *val.Validate

// registerClockValidation accepts HH:MM wall-clock times.
func registerClockValidation(field val.FieldLevel) bool {
	_, err := time.Parse(constant.ClockFormat, field.Field().String())

	return err == nil
}

// registerDayValidation accepts YYYY-MM-DD calendar dates.
func registerDayValidation(field val.FieldLevel) bool {
	_, err := time.Parse(constant.DayFormat, field.Field().String())

	return err == nil
}

// decimalValue lets numeric tags such as gt=0 run against decimal.Decimal fields.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()

		return f
	}

	return nil
}

// fieldName reports json (or form) names in messages instead of Go field names.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), constant.Comma)
		if name == "-" {
			return constant.Empty
		}

		if name != constant.Empty {
			return name
		}
	}

	return field.Name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	if err := validate.RegisterValidation("clock", registerClockValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("day", registerDayValidation); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
