package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized matches any 401 answer.
	ErrUnauthorized = errors.New("authentication required")
	// ErrNotFound matches any 404 answer.
	ErrNotFound = errors.New("not found")
)

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Is lets callers write errors.Is(err, api.ErrNotFound).
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Message returns the API's own message for err, or fallback when the error
// is not an API error or the body had nothing usable.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

const maxErrorBody = 64 << 10

func newError(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := errorMessage(raw)
	if message == "" {
		message = strings.ToLower(http.StatusText(resp.StatusCode))
	}
	return &Error{StatusCode: resp.StatusCode, Message: message}
}

// errorMessage digs the human message out of an error body: the "error"
// field, then "detail", then field validation lists ("schools: ...").
func errorMessage(raw []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}

	for _, key := range []string{"error", "detail"} {
		var s string
		if v, ok := fields[key]; ok && json.Unmarshal(v, &s) == nil && s != "" {
			return s
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		var list []string
		if json.Unmarshal(fields[k], &list) == nil && len(list) > 0 {
			parts = append(parts, k+": "+strings.Join(list, " "))
		}
	}
	return strings.Join(parts, "; ")
}
