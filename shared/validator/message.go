package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"

	"sportshub/shared/failure"
)

var (
	messages = map[string]string{
		"required":        "{field} is required",
		"required_if":     "{field} is required",
		"gte":             "{field} must be greater than or equal to {param}",
		"gt":              "{field} must be greater than {param}",
		"lte":             "{field} must be less than or equal to {param}",
		"oneof":           "{field} must be one of {param}",
		"max":             "{field} must be less than or equal to {param}",
		"min":             "{field} must be greater than or equal to {param}",
		"uuid":            "{field} must be a valid UUID",
		"reservationkind": "{field} must be one of " + strings.Join(ReservationKinds, ", "),
		"rfc3339":         "{field} must be an RFC 3339 timestamp",
	}

	reasons = map[string]string{
		"required":        failure.ReasonMissingField,
		"required_if":     failure.ReasonMissingField,
		"gt":              failure.ReasonInvalidQuantity,
		"gte":             failure.ReasonInvalidQuantity,
		"min":             failure.ReasonInvalidQuantity,
		"reservationkind": failure.ReasonInvalidKind,
		"rfc3339":         failure.ReasonInvalidInterval,
	}
)

// message renders the first failed rule as text and picks the matching rejection reason.
func message(err error) (string, string) {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			tmpl := messages[valErr.Tag()]
			if tmpl == "" {
				continue
			}

			msg := strings.ReplaceAll(tmpl, "{field}", valErr.Field())
			msg = strings.ReplaceAll(msg, "{param}", valErr.Param())

			reason := reasons[valErr.Tag()]
			if reason == "" {
				reason = failure.ReasonMissingField
			}

			return reason, msg
		}

		return failure.ReasonMissingField, valErrors.Error()
	}

	return failure.ReasonMissingField, err.Error()
}
