package repositories

import (
	"context"
	"database/sql"
	"errors"

	"zappayBack/internal/models"
)

// InvoiceRepository handles the invoices table.
type InvoiceRepository struct {
	DB *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository { return &InvoiceRepository{DB: db} }

// CreateInvoice inserts a freshly created invoice.
func (r *InvoiceRepository) CreateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	const q = `
        INSERT INTO invoices (token, secret, amount_cents, amount_cents_target, broker_reference, last_nonce, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, q,
		inv.Token, inv.Secret, inv.AmountCents, inv.AmountCentsTarget,
		inv.BrokerReference, inv.LastNonce, inv.Status, inv.CreatedAt)
	if err != nil {
		return models.Invoice{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Invoice{}, err
	}
	inv.ID = id
	return inv, nil
}

// GetInvoiceByToken fetches one invoice by its public token.
func (r *InvoiceRepository) GetInvoiceByToken(ctx context.Context, token string) (models.Invoice, error) {
	const q = `
        SELECT id, token, secret, amount_cents, amount_cents_target, broker_reference, last_nonce, status, created_at
        FROM invoices WHERE token = ?`
	var inv models.Invoice
	err := r.DB.QueryRowContext(ctx, q, token).Scan(
		&inv.ID, &inv.Token, &inv.Secret, &inv.AmountCents, &inv.AmountCentsTarget,
		&inv.BrokerReference, &inv.LastNonce, &inv.Status, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// AdvanceNonce bumps last_nonce to nonce only when strictly greater
// than the stored value. The single UPDATE is the whole
// compare-and-advance, so concurrent authentications against one
// invoice cannot both pass on a stale read.
func (r *InvoiceRepository) AdvanceNonce(ctx context.Context, token string, nonce int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE invoices SET last_nonce = ? WHERE token = ? AND last_nonce < ?`,
		nonce, token, nonce)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateStatus moves the invoice to a new status only from the expected
// current one, so concurrent settlement callbacks cannot double apply.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, token, from, to string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE invoices SET status = ? WHERE token = ? AND status = ?`,
		to, token, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
