package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when the model answers with no choices.
var ErrEmptyResponse = errors.New("no response from model")

// QuotaError signals that a model rejected the call because of quota or rate
// limits.
type QuotaError struct {
	Model string
	Err   error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("model %s quota exhausted: %v", e.Model, e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }

// IsQuotaError reports whether err carries a quota signal.
func IsQuotaError(err error) bool {
	var qErr *QuotaError
	return errors.As(err, &qErr)
}

// AllModelsExhaustedError is returned when every configured model was rate
// limited.
type AllModelsExhaustedError struct {
	Models []string
	Last   error
}

func (e *AllModelsExhaustedError) Error() string {
	return fmt.Sprintf("all models exhausted (%s): %v", strings.Join(e.Models, ", "), e.Last)
}

func (e *AllModelsExhaustedError) Unwrap() error { return e.Last }

// quotaMarkers only match a 429 in its status-code forms; a bare "429" can
// appear in request ids, URLs or echoed bodies.
var quotaMarkers = []string{
	"status code: 429",
	"status code 429",
	"status: 429",
	"status 429",
	"429 too many",
	"rate limit",
	"ratelimit",
	"quota",
	"resource_exhausted",
	"too many requests",
}

// looksLikeQuota classifies an untyped SDK error by its message.
func looksLikeQuota(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range quotaMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
