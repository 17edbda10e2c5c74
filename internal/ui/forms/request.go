package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const maxErrorBody = 64 << 10

// RelayError is a non-2xx answer from the form relay.
type RelayError struct {
	Status  int
	Message string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("form relay returned %d", e.Status)
	}
	return e.Message
}

// EncodeFields form-encodes the values exactly as entered.
func EncodeFields(values map[string][]string) url.Values {
	out := make(url.Values, len(values))
	for name, vs := range values {
		out[name] = append([]string(nil), vs...)
	}
	return out
}

// postContact sends one submission and returns the request id it was tagged with.
func postContact(ctx context.Context, client *http.Client, endpoint string, fields url.Values) (string, error) {
	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(fields.Encode()))
	if err != nil {
		return requestID, fmt.Errorf("build contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := client.Do(req)
	if err != nil {
		return requestID, fmt.Errorf("send contact request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return requestID, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return requestID, fmt.Errorf("read contact response: %w", err)
	}
	return requestID, &RelayError{Status: resp.StatusCode, Message: relayMessage(body)}
}

func relayMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(body))
}

// ErrorLabel picks the button label for a failed submission. Relays that have not
// been confirmed by their owner answer with an activation complaint, which gets its
// own hint.
func ErrorLabel(err error) string {
	if err == nil {
		return LabelFailed
	}
	// Only the relay's own words count; transport errors embed the request URL.
	var relay *RelayError
	if !errors.As(err, &relay) {
		return LabelFailed
	}
	if strings.Contains(strings.ToLower(relay.Message), "activat") {
		return LabelPending
	}
	return LabelFailed
}
