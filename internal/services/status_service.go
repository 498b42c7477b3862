package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"zappayBack/internal/models"
)

// Broadcaster delivers invoice updates to local room subscribers.
type Broadcaster interface {
	Broadcast(token, event string, payload interface{})
}

// UpdatePublisher hands invoice updates to a cross process feed.
type UpdatePublisher interface {
	PublishInvoiceUpdate(ctx context.Context, inv models.Invoice) error
}

// StatusStore is the persistence needed for settlement updates.
type StatusStore interface {
	GetInvoiceByToken(ctx context.Context, token string) (models.Invoice, error)
	UpdateStatus(ctx context.Context, token, from, to string) (bool, error)
}

// StatusService applies settlement driven status changes and pushes the
// new invoice state to subscribers. When a Publisher is configured the
// update goes through the shared feed and local delivery happens via
// the feed subscriber, so rooms on every process get exactly one event.
type StatusService struct {
	InvoiceRepo StatusStore
	Hub         Broadcaster
	Publisher   UpdatePublisher
	InfoLog     *log.Logger
}

// UpdateStatus moves the invoice along its one directional lifecycle
// and notifies the invoice room.
func (s *StatusService) UpdateStatus(ctx context.Context, token, to string) (models.Invoice, error) {
	inv, err := s.InvoiceRepo.GetInvoiceByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.Invoice{}, models.ErrInvoiceNotFound
		}
		return models.Invoice{}, err
	}
	if !models.CanTransition(inv.Status, to) {
		return models.Invoice{}, fmt.Errorf("%w: %s -> %s", models.ErrInvalidStatus, inv.Status, to)
	}

	moved, err := s.InvoiceRepo.UpdateStatus(ctx, token, inv.Status, to)
	if err != nil {
		return models.Invoice{}, err
	}
	if !moved {
		// a concurrent settlement already advanced the invoice
		return models.Invoice{}, fmt.Errorf("%w: %s -> %s", models.ErrInvalidStatus, inv.Status, to)
	}
	inv.Status = to
	if s.InfoLog != nil {
		s.InfoLog.Printf("invoice %s -> %s", token, to)
	}

	if s.Publisher != nil {
		if err := s.Publisher.PublishInvoiceUpdate(ctx, inv); err != nil {
			return models.Invoice{}, fmt.Errorf("publish invoice update: %w", err)
		}
		return inv, nil
	}
	s.Hub.Broadcast(inv.Token, "update", inv)
	return inv, nil
}
