// Package external provides adapters for the services the client talks to:
// the WeatherKit API, the account backend and the durable key-value stores.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxErrorBody bounds how much of an error response is read for its message
const maxErrorBody = 64 << 10

// statusText renders a response status as "<code> <status text>"
func statusText(resp *http.Response) string {
	text := http.StatusText(resp.StatusCode)
	if text == "" {
		return fmt.Sprintf("%d", resp.StatusCode)
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, text)
}

// errorBody is the {message} body the backend sends with failures
type errorBody struct {
	Message string `json:"message"`
}

// readErrorMessage returns the message field of an error body, or "" when
// the body has none
func readErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Message
}

func closeBody(resp *http.Response, logger ports.Logger, service string) {
	if closeErr := resp.Body.Close(); closeErr != nil {
		logger.Warn("Failed to close response body",
			ports.F("service", service),
			ports.F("error", closeErr))
	}
}

// transportError classifies a failed round trip. A cancelled caller is not a
// network failure of the service, but it still never completed.
func transportError(ctx context.Context, service string, err error) error {
	if ctx.Err() != nil {
		return errors.NewNetworkFailureError(service+" request cancelled", ctx.Err())
	}
	return errors.NewNetworkFailureError(service+" request could not complete", err)
}
