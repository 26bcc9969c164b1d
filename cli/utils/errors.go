package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"datashare/cli/styles"
	"datashare/shared"
)

// HTTPError is returned for any non-2xx response from the server. Message
// holds the server's {"error": "..."} value when one was provided.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if len(e.Message) > 0 {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// ParseHTTPError reads the error body of a failed response into an HTTPError.
// The caller remains responsible for closing the body.
func ParseHTTPError(response *http.Response) error {
	httpErr := &HTTPError{StatusCode: response.StatusCode}

	body, err := io.ReadAll(response.Body)
	if err != nil || len(body) == 0 {
		return httpErr
	}

	var errResponse shared.ErrorResponse
	if err = json.Unmarshal(body, &errResponse); err == nil {
		httpErr.Message = errResponse.Error
	} else if !strings.HasPrefix(strings.TrimSpace(string(body)), "<") {
		httpErr.Message = strings.TrimSpace(string(body))
	}

	return httpErr
}

// ErrorMessage returns the server-supplied message carried by err, or
// fallback when the error did not come from the server (network failures,
// decoding errors) or the server gave no message.
func ErrorMessage(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && len(httpErr.Message) > 0 {
		return httpErr.Message
	}

	return fallback
}

// IsUnauthorized reports whether err is a 401 response from the server.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.IsUnauthorized()
}

func HandleCLIError(msg string, err error) {
	if err == nil {
		return
	} else if errors.Is(err, huh.ErrUserAborted) {
		os.Exit(0)
	}

	styles.PrintErrStr(fmt.Sprintf("ERROR: %s - %v\n", msg, err))
	os.Exit(1)
}
