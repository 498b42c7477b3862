package bronze

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"zappayBack/internal/auth"
)

func TestCreateOrderSignsAndParses(t *testing.T) {
	const secret = "broker-secret"
	var gotBody []byte
	var gotSignature string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/BrokerCreate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotSignature = r.Header.Get("X-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"token":"ord-1","amountSend":"10.50","amountReceive":"15.00"}`))
	}))
	defer ts.Close()

	c := NewClient(nil, ts.URL, "api-key", secret, nil)
	resp, err := c.CreateOrder(context.Background(), CreateOrderRequest{
		Nonce:                 1234,
		Market:                "ZAPNZD",
		Side:                  "sell",
		Amount:                "15",
		AmountAsQuoteCurrency: true,
		Recipient:             "00-1234-5678901-00",
		CustomRecipientParams: RecipientParams{Reference: "ref", Code: "code", Particulars: "part"},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if resp.Token != "ord-1" || resp.AmountSend != "10.50" || resp.AmountReceive != "15.00" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if want := auth.SignBase64(secret, gotBody); gotSignature != want {
		t.Fatalf("X-Signature = %q, want %q", gotSignature, want)
	}

	var sent CreateOrderRequest
	if err := json.Unmarshal(gotBody, &sent); err != nil {
		t.Fatalf("unmarshal sent body: %v", err)
	}
	if sent.Key != "api-key" {
		t.Fatalf("key = %q, client must inject its api key", sent.Key)
	}
	if sent.Side != "sell" || !sent.AmountAsQuoteCurrency || sent.Market != "ZAPNZD" {
		t.Fatalf("unexpected request body: %+v", sent)
	}
	if sent.CustomRecipientParams.Reference != "ref" {
		t.Fatalf("recipient params not carried: %+v", sent.CustomRecipientParams)
	}
}

func TestCreateOrderNon2xxReturnsAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"market closed"}`))
	}))
	defer ts.Close()

	c := NewClient(nil, ts.URL, "api-key", "secret", nil)
	_, err := c.CreateOrder(context.Background(), CreateOrderRequest{Market: "ZAPNZD"})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status code = %d", apiErr.StatusCode)
	}
	if apiErr.Body == "" {
		t.Fatal("expected body to be captured")
	}
}

func TestCreateOrderTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections

	c := NewClient(nil, ts.URL, "api-key", "secret", nil)
	_, err := c.CreateOrder(context.Background(), CreateOrderRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not be an *APIError: %v", err)
	}
}
