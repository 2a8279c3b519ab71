package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"foxyweb/service"

	log "github.com/sirupsen/logrus"
)

// Checkout is a pending checkout created by the payment provider
type Checkout struct {
	CheckoutID string `json:"checkoutId"`
	UserID     string `json:"userId"`
	ItemID     string `json:"itemId"`
}

type createRequest struct {
	UserID string `json:"userId"`
	ItemID string `json:"itemId"`
}

// Client talks to the checkout provider
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a checkout client for the provider at baseURL
func NewClient(baseURL string) *Client {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Create opens a checkout for itemID on behalf of userID
func (c *Client) Create(ctx context.Context, userID, itemID string) (*Checkout, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id is required", service.ErrValidation)
	}

	body, err := json.Marshal(createRequest{UserID: userID, ItemID: itemID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"api/checkout", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w: %w", service.ErrConnection, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: checkout item %s", service.ErrItemNotFound, itemID)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("checkout provider returned status %d", resp.StatusCode)
	}

	var checkout Checkout
	if err := json.NewDecoder(resp.Body).Decode(&checkout); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", err)
	}
	if checkout.CheckoutID == "" {
		return nil, fmt.Errorf("checkout provider returned no checkout id")
	}

	log.WithFields(log.Fields{
		"userID":     userID,
		"itemID":     itemID,
		"checkoutID": checkout.CheckoutID,
	}).Info("Checkout created")

	return &checkout, nil
}

// RedirectURL returns the provider page for a checkout
func (c *Client) RedirectURL(checkoutID string) string {
	return c.baseURL + "checkout/id/" + checkoutID
}
