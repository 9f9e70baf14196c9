// Package upstream fetches JSON documents from the public APIs behind the proxies.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Error is returned for any failure talking to an upstream API.
// Op is one of "request", "status", "read" or "decode".
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Op {
	case "status":
		return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
	case "decode":
		return fmt.Sprintf("invalid upstream response: %v", e.Err)
	default:
		return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the failure was a deadline
func (e *Error) IsTimeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// GetJSON performs a GET and decodes the body into v.
// Transport errors are unwrapped from *url.Error so the request URL,
// which may carry an API key, never ends up in the message.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &Error{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return &Error{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &Error{Op: "status", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: "read", Err: err}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Op: "decode", Err: err}
	}
	return nil
}
