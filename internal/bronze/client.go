package bronze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"zappayBack/internal/auth"
)

// RecipientParams carries the encoded recipient detail slots of a bank
// transfer.
type RecipientParams struct {
	Reference   string `json:"reference"`
	Code        string `json:"code"`
	Particulars string `json:"particulars"`
}

// CreateOrderRequest is the BrokerCreate request body. Key is filled in
// by the client.
type CreateOrderRequest struct {
	Key                   string          `json:"key"`
	Nonce                 int64           `json:"nonce"`
	Market                string          `json:"market"`
	Side                  string          `json:"side"`
	Amount                string          `json:"amount"`
	AmountAsQuoteCurrency bool            `json:"amountasquotecurrency"`
	Recipient             string          `json:"recipient"`
	CustomRecipientParams RecipientParams `json:"customrecipientparams"`
}

// CreateOrderResponse is the broker's reply on success. Amounts are
// decimal strings in major units.
type CreateOrderResponse struct {
	Token         string `json:"token"`
	AmountSend    string `json:"amountSend"`
	AmountReceive string `json:"amountReceive"`
}

// APIError is a non success HTTP response from the broker.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bronze: unexpected status %s (%s)", e.Status, e.Body)
}

// Client is a minimal Bronze broker API client.
type Client struct {
	httpClient *http.Client
	apiKey     string
	secret     string
	baseURL    string
	logger     *slog.Logger
}

// NewClient constructs a new Bronze client.
func NewClient(httpClient *http.Client, baseURL, apiKey, secret string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		secret:     secret,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// CreateOrder submits a signed sell order. The call is never retried:
// the broker may have partially processed a failed request, so a blind
// retry could double spend.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error) {
	req.Key = c.apiKey
	body, err := json.Marshal(req)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	url := c.baseURL + "/api/v1/BrokerCreate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return CreateOrderResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Signature", auth.SignBase64(c.secret, body))

	c.logger.Info("bronze: creating broker order", "market", req.Market, "recipient", req.Recipient)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return CreateOrderResponse{}, fmt.Errorf("bronze request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return CreateOrderResponse{}, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	var orderResp CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return CreateOrderResponse{}, fmt.Errorf("decode bronze response: %w", err)
	}
	return orderResp, nil
}
