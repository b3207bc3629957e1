package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sentirsebien/go-client/internal/errors"
)

const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx API response. Detail carries the
// server's "detail" message when the body followed the usual error shape.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Code)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Code, e.Detail)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	statusErr := &StatusError{}
	return errors.As(err, &statusErr) && statusErr.Code == code
}

func newStatusError(code int, body io.Reader) error {
	detail := struct {
		Detail string `json:"detail"`
	}{}

	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err == nil {
		_ = json.Unmarshal(raw, &detail)
	}

	return &StatusError{Code: code, Detail: detail.Detail}
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
