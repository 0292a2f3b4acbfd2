// Package payment integrates the external payment provider behind the
// PaymentGateway port. The provider exposes a basic-auth REST API for
// registering payment intents and signs its success callbacks with
// HMAC-SHA256 over "orderID|paymentID".
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"storefront-backend/application/ports"
	pkgerrors "storefront-backend/pkg/errors"

	"go.uber.org/zap"
)

// Gateway implements the PaymentGateway port against the provider's
// HTTP API
type Gateway struct {
	baseURL    string
	keyID      string
	keySecret  string
	currency   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGateway creates a new payment gateway adapter
func NewGateway(baseURL, keyID, keySecret, currency string, logger *zap.Logger) ports.PaymentGateway {
	return &Gateway{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		currency:  currency,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder registers a payment intent. The provider expects the
// amount in the smallest currency unit.
func (g *Gateway) CreateOrder(ctx context.Context, amount float64) (*ports.GatewayOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   int64(math.Round(amount * 100)),
		Currency: g.currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewExternalError("payment gateway", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Error("Payment gateway rejected order",
			zap.Int("status", resp.StatusCode),
			zap.Float64("amount", amount),
		)
		return nil, pkgerrors.NewExternalError("payment gateway",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var created createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, pkgerrors.NewExternalError("payment gateway", err)
	}

	return &ports.GatewayOrder{
		ID:       created.ID,
		Amount:   float64(created.Amount) / 100,
		Currency: created.Currency,
	}, nil
}

// VerifySignature checks the provider's callback signature for an
// order/payment pair. Comparison is constant time.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
