// File: services/messaging/transport.go
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hebelki/models"
	"hebelki/utils"
)

// gatewayHTTPClient is shared by all HTTP transports so outbound delivery
// cannot hang a request.
var gatewayHTTPClient = &http.Client{Timeout: 5 * time.Second}

// LogTransport writes the message to the application log instead of
// delivering it. It stands in for a real gateway in development and tests.
// Replace via config with an HTTPTransport pointing at your provider.
type LogTransport struct {
	Channel models.MessageChannel
}

func (t *LogTransport) Deliver(ctx context.Context, biz *models.Business, msg *models.MessageRecord) error {
	utils.GetLogger().Sugar().Infof("Sending %s message to %s: %s", t.Channel, msg.To, msg.Subject)
	return nil
}

// HTTPTransport forwards the message to an external gateway as JSON. The
// gateway owns provider credentials and channel formatting.
type HTTPTransport struct {
	URL    string
	Client *http.Client
}

func NewHTTPTransport(url string) *HTTPTransport {
	return &HTTPTransport{URL: url, Client: gatewayHTTPClient}
}

type gatewayPayload struct {
	BusinessID string `json:"businessId"`
	Channel    string `json:"channel"`
	To         string `json:"to"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body"`
}

func (t *HTTPTransport) Deliver(ctx context.Context, biz *models.Business, msg *models.MessageRecord) error {
	payload := gatewayPayload{
		BusinessID: biz.ID,
		Channel:    string(msg.Channel),
		To:         msg.To,
		Subject:    msg.Subject,
		Body:       msg.Body,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal gateway payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway call failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return nil
}
