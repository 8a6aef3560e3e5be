// Package notifier pushes short operational messages (order notices, monthly
// digests) to a webhook-based messaging endpoint.
package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Diaealaoui/agrimanager-sub000/internal/config"
)

// Client exposes the messaging operations used by the application.
type Client interface {
	SendMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	channel    string
}

// NewClient builds a webhook notifier from the provided configuration values.
func NewClient(cfg config.NotifierConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.WebhookURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &WebhookClient{
		httpClient: restyClient,
		channel:    cfg.Channel,
	}
}

// MessageRequest is a simplified outbound message payload.
type MessageRequest struct {
	Title string
	Text  string
}

// MessageResponse mirrors a successful delivery acknowledgement.
type MessageResponse struct {
	MessageID string `json:"message_id"`
}

// apiError represents the webhook endpoint's error payload.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendMessage posts one message to the configured channel.
func (c *WebhookClient) SendMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	payload := map[string]any{
		"channel": c.channel,
		"title":   req.Title,
		"text":    req.Text,
	}

	result := new(MessageResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("send notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		code := resp.StatusCode()
		if apiErr != nil {
			message = apiErr.Error.Message
			if apiErr.Error.Code != 0 {
				code = apiErr.Error.Code
			}
		}
		return nil, fmt.Errorf("notifier api error: code=%d, message=%s", code, message)
	}

	return result, nil
}
