package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

var (
	// ErrUnavailable means the token service could not give an answer:
	// transport failure, timeout, 5xx or a body that is not JSON.
	ErrUnavailable = errors.New("authsdk: token service unavailable")

	// ErrBadRequest means the token service rejected the request shape.
	ErrBadRequest = errors.New("authsdk: bad request")

	// ErrServiceKey means the X-Service-Key header was rejected.
	ErrServiceKey = errors.New("authsdk: service key rejected")
)

// Error is a failure reported by the token service.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("authsdk: token service returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap classifies the failure, see the package documentation.
func (e *Error) Unwrap() error {
	switch {
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrUnavailable
	case e.Message == MsgInvalidServiceKey:
		return ErrServiceKey
	case e.StatusCode == http.StatusUnauthorized &&
		(e.Message == MsgTokenExpired || e.Message == MsgRefreshTokenExpired):
		return jwtx.ErrExpired
	case e.StatusCode == http.StatusUnauthorized:
		return jwtx.ErrInvalid
	case e.StatusCode == http.StatusBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

// parseErrorResponse turns a non-success response into an error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return fmt.Errorf("%w: HTTP %d with non-JSON body", ErrUnavailable, resp.StatusCode)
	}

	msg := errResp.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg}
}
