package relay

import (
	"fmt"
	"net/http"
)

// Step identifies the pipeline stage an error originated from.
type Step string

const (
	StepValidate  Step = "validate"
	StepFetch     Step = "fetch"
	StepNormalize Step = "normalize"
	StepPublish   Step = "publish"
	StepSubmit    Step = "submit"
)

// Client-facing messages per failing step.
const (
	msgFetchFailed     = "Failed to download PDF"
	msgNormalizeFailed = "Failed to generate a correctly formatted PDF"
	msgPublishFailed   = "Failed to upload PDF"
	msgSubmitFailed    = "Failed to place book order"
)

// StepError is the typed failure returned up the pipeline. The HTTP handler
// is the single point translating it into a response status and body.
type StepError struct {
	Step Step
	Msg  string
	Err  error
}

func (e *StepError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Step, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Step, e.Msg, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the failing step to a response status. Validation failures
// are the caller's fault; everything downstream is a server-side failure.
func (e *StepError) HTTPStatus() int {
	if e.Step == StepValidate {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
