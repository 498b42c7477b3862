package models

import "time"

// Invoice lifecycle statuses. Transitions are one directional, settled
// and expired are terminal.
const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusSettled        = "settled"
	StatusExpired        = "expired"
)

var statusTransitions = map[string]map[string]struct{}{
	StatusPendingPayment: {StatusConfirmed: {}, StatusExpired: {}},
	StatusConfirmed:      {StatusSettled: {}, StatusExpired: {}},
}

// CanTransition reports whether an invoice may move between two statuses.
func CanTransition(from, to string) bool {
	next, ok := statusTransitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Invoice represents one requested bank transfer tracked through its
// payment lifecycle. The signing secret and anti-replay nonce never
// appear in the JSON representation pushed to clients.
type Invoice struct {
	ID                int64     `json:"-"`
	Token             string    `json:"token"`
	Secret            string    `json:"-"`
	AmountCents       int64     `json:"amount_cents"`
	AmountCentsTarget int64     `json:"amount_cents_target_currency"`
	BrokerReference   string    `json:"broker_reference"`
	LastNonce         int64     `json:"-"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}
