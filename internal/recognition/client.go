// Package recognition implements the image-recognition gateway client.
// The gateway itself is an external vision service; this client's job is
// the narrow request/response contract and failure classification.
package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shoetrack/internal/models"
)

// DefaultTimeout bounds one detection call. The service surfaces a
// retry affordance on timeout, so erring short beats hanging the till.
const DefaultTimeout = 15 * time.Second

// Client calls the vision endpoint with a single JPEG frame per request
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient creates a recognition client. A zero timeout means
// DefaultTimeout.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

// Detect sends a base64-encoded JPEG frame and returns the gateway's
// descriptor. Network, HTTP and decode failures come back as transient
// GatewayErrors; a low-confidence or "None detected" response is a valid
// result the caller classifies, not an error.
func (c *Client) Detect(ctx context.Context, imageBase64 string) (models.Detection, error) {
	payload, err := json.Marshal(detectRequest{Image: imageBase64, MimeType: "image/jpeg"})
	if err != nil {
		return models.Detection{}, models.NewGatewayError("recognition.detect", false, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return models.Detection{}, models.NewGatewayError("recognition.detect", false, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Detection{}, models.NewGatewayError("recognition.detect", true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Detection{}, models.NewGatewayError("recognition.detect", true,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var detection models.Detection
	if err := json.NewDecoder(resp.Body).Decode(&detection); err != nil {
		return models.Detection{}, models.NewGatewayError("recognition.detect", true, err)
	}

	return detection, nil
}
