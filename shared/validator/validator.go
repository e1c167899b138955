package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	val "github.com/go-playground/validator/v10"

	"sportshub/shared/failure"
)

var validate *val.Validate

// ReservationKinds lists the reservation variants accepted on the wire.
var ReservationKinds = []string{"facility", "coach_personal", "coach_class", "accessory_rent", "accessory_buy"}

func registerReservationKindValidation(field val.FieldLevel) bool {
	return slices.Contains(ReservationKinds, field.Field().String())
}

func registerRFC3339Validation(field val.FieldLevel) bool {
	value := field.Field().String()
	if value == "" {
		return true
	}

	_, err := time.Parse(time.RFC3339, value)

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("reservationkind", registerReservationKindValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("rfc3339", registerRFC3339Validation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(data); err != nil {
		return failure.Validation(failure.ReasonMissingField, fmt.Sprintf("failed to decode request body: %v", err))
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		reason, msg := message(err)

		return failure.Validation(reason, msg)
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		reason, msg := message(err)

		return failure.Validation(reason, msg)
	}

	return nil
}
