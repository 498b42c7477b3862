package auth

import (
	"context"
	"errors"
	"fmt"

	"zappayBack/internal/models"
)

// InvoiceStore is the invoice lookup and nonce state authentication
// needs.
type InvoiceStore interface {
	GetInvoiceByToken(ctx context.Context, token string) (models.Invoice, error)
	// AdvanceNonce sets last_nonce to nonce only if nonce is strictly
	// greater than the stored value, reporting whether it advanced.
	// The compare and the write must be one atomic step.
	AdvanceNonce(ctx context.Context, token string, nonce int64) (bool, error)
}

// Authenticator verifies signed auth payloads from live connections
// against per-invoice secrets.
type Authenticator struct {
	Store InvoiceStore
}

func NewAuthenticator(store InvoiceStore) *Authenticator {
	return &Authenticator{Store: store}
}

// Authenticate checks the HMAC signature over body with the invoice
// secret, then advances the invoice nonce. The signature is always
// checked before the nonce so tampering can never surface as a replay.
// Every accepted call strictly advances last_nonce, which is what makes
// captured (nonce, signature) pairs worthless.
func (a *Authenticator) Authenticate(ctx context.Context, token string, nonce int64, signature string, body []byte) (models.Invoice, error) {
	invoice, err := a.Store.GetInvoiceByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Invoice{}, models.ErrInvoiceNotFound
		}
		return models.Invoice{}, fmt.Errorf("lookup invoice: %w", err)
	}
	if !Verify(body, signature, invoice.Secret) {
		return models.Invoice{}, models.ErrBadSignature
	}
	if nonce <= invoice.LastNonce {
		return models.Invoice{}, models.ErrReplayedNonce
	}
	advanced, err := a.Store.AdvanceNonce(ctx, token, nonce)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("advance nonce: %w", err)
	}
	if !advanced {
		// lost a race against a concurrent authentication
		return models.Invoice{}, models.ErrReplayedNonce
	}
	invoice.LastNonce = nonce
	return invoice, nil
}
