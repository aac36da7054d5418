package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage renders a bind failure as a client-facing message.
// Validation failures are reported per field; anything else (malformed JSON,
// type mismatches) falls back to the raw binding error.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, len(verrs))
		for i, fe := range verrs {
			if fe.Param() != "" {
				parts[i] = fmt.Sprintf("%s failed on the '%s=%s' rule", fe.Field(), fe.Tag(), fe.Param())
			} else {
				parts[i] = fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
			}
		}
		return "Validation failed: " + strings.Join(parts, ", ")
	}
	return "Invalid request format: " + err.Error()
}
