// Package response writes the JSON envelopes shared by every API route.
package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gordon0907/ark-tribe-log/internal/tribelog"
)

// APIResponse wraps successful payloads.
type APIResponse struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path"`
}

// APIError wraps failures. Decode is set only for save file format errors.
type APIError struct {
	Message string        `json:"message"`
	Error   string        `json:"error"`
	Path    string        `json:"path"`
	Status  int           `json:"status"`
	Decode  *DecodeDetail `json:"decode,omitempty"`
}

// DecodeDetail locates a save file decode failure.
type DecodeDetail struct {
	Kind     string `json:"kind"`
	Offset   int64  `json:"offset"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

func requestPath(c echo.Context) string {
	if req := c.Request(); req != nil {
		return req.URL.Path
	}
	return ""
}

func success(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, APIResponse{Data: data, Status: status, Message: message, Path: requestPath(c)})
}

func OK(c echo.Context, data any, message string) error {
	return success(c, http.StatusOK, data, message)
}

func Created(c echo.Context, data any, message string) error {
	return success(c, http.StatusCreated, data, message)
}

// Error sends an APIError with the given status.
func Error(c echo.Context, status int, message, detail string) error {
	return c.JSON(status, APIError{Message: message, Error: detail, Path: requestPath(c), Status: status})
}

func BadRequest(c echo.Context, message, detail string) error {
	return Error(c, http.StatusBadRequest, message, detail)
}

func NotFound(c echo.Context, message, detail string) error {
	return Error(c, http.StatusNotFound, message, detail)
}

// Unavailable reports a feature whose backing store is not configured.
func Unavailable(c echo.Context, message string) error {
	return Error(c, http.StatusServiceUnavailable, message, message)
}

func InternalError(c echo.Context, message, detail string) error {
	return Error(c, http.StatusInternalServerError, message, detail)
}

// DecodeFailed sends 500 for a save file that could not be read or decoded.
func DecodeFailed(c echo.Context, err error) error {
	body := APIError{
		Message: "decode tribe log failed",
		Error:   err.Error(),
		Path:    requestPath(c),
		Status:  http.StatusInternalServerError,
	}
	var de *tribelog.DecodeError
	if errors.As(err, &de) {
		body.Decode = &DecodeDetail{Kind: ErrorKind(err), Offset: de.Offset, Expected: de.Expected, Actual: de.Actual}
	}
	return c.JSON(body.Status, body)
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{tribelog.ErrMarkerNotFound, "marker_not_found"},
	{tribelog.ErrMalformedHeader, "malformed_header"},
	{tribelog.ErrInvalidText, "invalid_text"},
	{tribelog.ErrInvalidColorSpec, "invalid_color_spec"},
	{tribelog.ErrCountMismatch, "count_mismatch"},
	{tribelog.ErrUnexpectedEOF, "unexpected_eof"},
}

// ErrorKind labels err for responses and metrics. Anything that is not a
// decode error is "io".
func ErrorKind(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "io"
}
