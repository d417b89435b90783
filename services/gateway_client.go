package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GatewayClient talks to the payment gateway that hosts checkout
// sessions for wallet top-ups.
type GatewayClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type CheckoutSession struct {
	SessionID   string  `json:"sessionId"`
	CheckoutURL string  `json:"checkoutUrl"`
	Amount      float64 `json:"amount"`
}

// The gateway answered with two shapes over its history: a numeric
// "code" field, or a boolean "success". Both are folded into one result.
type gatewayEnvelope struct {
	Code      *int    `json:"code"`
	Success   *bool   `json:"success"`
	Message   string  `json:"message"`
	Error     string  `json:"error"`
	SessionID string  `json:"sessionId"`
	URL       string  `json:"url"`
	Amount    float64 `json:"amount"`
}

func (e *gatewayEnvelope) ok() bool {
	if e.Success != nil {
		return *e.Success
	}
	if e.Code != nil {
		return *e.Code >= 200 && *e.Code < 300
	}
	// No discriminator at all: the HTTP status decides.
	return true
}

func (e *gatewayEnvelope) errMessage() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return "payment gateway request failed"
}

// CreateTopupSession asks the gateway for a hosted checkout session.
// Nothing is credited at this point.
func (g *GatewayClient) CreateTopupSession(customerID string, amount float64) (*CheckoutSession, error) {
	env, err := g.post("/wallet/topup", map[string]any{
		"customerId": customerID,
		"amount":     amount,
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{
		SessionID:   env.SessionID,
		CheckoutURL: env.URL,
		Amount:      amount,
	}, nil
}

// VerifyTopup confirms a completed checkout session with the gateway.
func (g *GatewayClient) VerifyTopup(sessionID, customerID string, amount float64) error {
	_, err := g.post("/wallet/process-topup", map[string]any{
		"sessionId":  sessionID,
		"customerId": customerID,
		"amount":     amount,
	})
	return err
}

// No retries anywhere: a gateway failure surfaces once, with the raw
// body attached for diagnostics.
func (g *GatewayClient) post(path string, body any) (*gatewayEnvelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	res, err := g.HTTP.Post(g.BaseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var env gatewayEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("payment gateway returned malformed response (raw: %s)", raw)
	}

	if res.StatusCode >= 400 || !env.ok() {
		return nil, fmt.Errorf("%s (raw: %s)", env.errMessage(), raw)
	}
	return &env, nil
}
