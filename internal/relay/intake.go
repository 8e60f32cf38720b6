package relay

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Lllllllleong/bookorderflow/internal/models"
)

var validate = newValidator()

// newValidator builds the shared validator instance. Field names in
// validation errors are resolved to their JSON tag so the client sees the
// wire name, not the Go name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateOrderRequest checks that all required order fields are present.
// It reports the first missing field only and performs no format validation.
func ValidateOrderRequest(req *models.OrderRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &StepError{
			Step: StepValidate,
			Msg:  fmt.Sprintf("Missing field: %s", verrs[0].Field()),
			Err:  err,
		}
	}
	return &StepError{Step: StepValidate, Msg: "Invalid request", Err: err}
}
