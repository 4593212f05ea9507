package client

import (
	"context"
	"encoding/json"

	"github.com/busebalkan99/design-checklist-vercel/internal/api"
	"github.com/busebalkan99/design-checklist-vercel/internal/api/presenter"
)

// Load fetches the saved data of userID. Data is nil when nothing was saved yet.
func (c *Client) Load(ctx context.Context, userID string) (*presenter.LoadEnvelope, string, error) {
	var resp presenter.LoadEnvelope
	correlation, err := c.get(ctx, c.url().
		setPath(api.LoadRoute).
		addQueryParam("userId", userID).
		build(), &resp)
	if err != nil {
		return nil, correlation, err
	}
	return &resp, correlation, nil
}

// SaveOptions are the fields of a save request besides the data itself.
type SaveOptions struct {
	UserID    string
	UserEmail string

	// Timestamp is sent as-is, the server stores it next to the data.
	Timestamp string
}

// savePayload is the request body of a save.
type savePayload struct {
	UserID    string          `json:"userId"`
	UserEmail string          `json:"userEmail,omitempty"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Save stores data for opts.UserID.
func (c *Client) Save(ctx context.Context, data json.RawMessage, opts SaveOptions) (*presenter.SaveEnvelope, string, error) {
	payload := savePayload{
		UserID:    opts.UserID,
		UserEmail: opts.UserEmail,
		Data:      data,
		Timestamp: opts.Timestamp,
	}

	var resp presenter.SaveEnvelope
	correlation, err := c.post(ctx, c.url().
		setPath(api.SaveRoute).
		build(), payload, &resp)
	if err != nil {
		return nil, correlation, err
	}
	return &resp, correlation, nil
}
