package dashboard

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to dashboard errors so transports can switch on them.
const (
	TextCodeUnknownOption  = "UNKNOWN_OPTION"
	TextCodeUnknownMetric  = "UNKNOWN_METRIC"
	TextCodeUnknownPath    = "UNKNOWN_PATH"
	TextCodeInvalidCard    = "INVALID_STAT_CARD"
	TextCodeInvalidFixture = "INVALID_FIXTURES"
	TextCodePageNotFound   = "PAGE_NOT_FOUND"
	TextCodeSamplerFailed  = "SAMPLER_FAILED"
	TextCodeUnknownSection = "UNKNOWN_SECTION"
	TextCodeSourceFailed   = "SOURCE_FAILED"
	TextCodeInvalidPayload = "INVALID_PAYLOAD"
)

func validationError(textCode, format string, args ...any) *goerrors.Error {
	return goerrors.New(fmt.Sprintf(format, args...), goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(textCode)
}

func notFoundError(textCode, format string, args ...any) *goerrors.Error {
	return goerrors.New(fmt.Sprintf(format, args...), goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(textCode)
}

// ErrInvalidPayload builds the error transports return for malformed request bodies.
func ErrInvalidPayload(format string, args ...any) error {
	return validationError(TextCodeInvalidPayload, format, args...)
}

// ErrPageNotFound builds the error returned when a page session is unknown or expired.
func ErrPageNotFound(id string) error {
	return notFoundError(TextCodePageNotFound, "dashboard: page %q not found", id).
		WithMetadata(map[string]any{"page_id": id})
}

// HTTPStatus maps a dashboard error to the status code transports should use.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var derr *goerrors.Error
	if goerrors.As(err, &derr) && derr.Code != 0 {
		return derr.Code
	}
	switch {
	case goerrors.IsValidation(err), goerrors.IsCategory(err, goerrors.CategoryBadInput):
		return http.StatusBadRequest
	case goerrors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse converts any error into the go-errors response envelope.
func ErrorResponse(err error) goerrors.ErrorResponse {
	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return mapped.ToErrorResponse(false, nil)
}

func wrapSamplerError(err error, metric TrendMetric, rangeToken string) error {
	wrapped := goerrors.Wrap(err, goerrors.CategoryExternal, "dashboard: trend sampler failed")
	if wrapped.TextCode == "" {
		wrapped = wrapped.WithTextCode(TextCodeSamplerFailed)
	}
	if wrapped.Code == 0 {
		wrapped = wrapped.WithCode(http.StatusBadGateway)
	}
	return wrapped.WithMetadata(map[string]any{"metric": string(metric), "range": rangeToken})
}
