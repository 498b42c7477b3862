package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"zappayBack/internal/bronze"
	"zappayBack/internal/fields"
	"zappayBack/internal/models"
	"zappayBack/utils"
)

// BrokerClient is the remote order creation capability.
type BrokerClient interface {
	CreateOrder(ctx context.Context, req bronze.CreateOrderRequest) (bronze.CreateOrderResponse, error)
}

// InvoiceCreator persists invoices for the orchestrator.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error)
}

// InvoiceService drives invoice creation end to end: field validation
// and encoding, the broker sell order, persistence.
type InvoiceService struct {
	InvoiceRepo InvoiceCreator
	Broker      BrokerClient
	Market      string
	ErrorLog    *log.Logger

	Now func() time.Time // defaults to time.Now
}

var hundred = decimal.NewFromInt(100)

// CreateInvoice validates the submitted amount and field values,
// creates a sell order with the broker and persists the resulting
// invoice. All or nothing: when the broker call fails no invoice
// exists, and the call is never retried here.
func (s *InvoiceService) CreateInvoice(ctx context.Context, utility models.Utility, values map[string]string, amount string) (models.Invoice, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil || amt.Sign() <= 0 {
		return models.Invoice{}, models.ErrInvalidAmount
	}

	if err := fields.Validate(utility.Fields, values); err != nil {
		return models.Invoice{}, err
	}
	details := fields.Pack(utility.Fields, values)

	now := s.Now
	if now == nil {
		now = time.Now
	}
	req := bronze.CreateOrderRequest{
		Nonce:                 now().Unix(),
		Market:                s.Market,
		Side:                  "sell",
		Amount:                amt.String(),
		AmountAsQuoteCurrency: true,
		Recipient:             utility.BankAccount,
		CustomRecipientParams: bronze.RecipientParams{
			Reference:   details["reference"],
			Code:        details["code"],
			Particulars: details["particulars"],
		},
	}

	resp, err := s.Broker.CreateOrder(ctx, req)
	if err != nil {
		var apiErr *bronze.APIError
		if errors.As(err, &apiErr) {
			s.errorf("bronze order rejected: %v", err)
			return models.Invoice{}, models.ErrRemoteRejected
		}
		s.errorf("bronze order failed: %v", err)
		return models.Invoice{}, models.ErrRemoteUnreachable
	}

	amountCents, err := centsFromDecimalString(resp.AmountSend)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("broker amountSend: %w", err)
	}
	amountCentsTarget, err := centsFromDecimalString(resp.AmountReceive)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("broker amountReceive: %w", err)
	}

	secret, err := utils.GenerateSecret()
	if err != nil {
		return models.Invoice{}, fmt.Errorf("generate secret: %w", err)
	}
	inv := models.Invoice{
		Token:             utils.GenerateToken(),
		Secret:            secret,
		AmountCents:       amountCents,
		AmountCentsTarget: amountCentsTarget,
		BrokerReference:   resp.Token,
		LastNonce:         0, // client nonces must start above zero
		Status:            models.StatusPendingPayment,
		CreatedAt:         now(),
	}
	return s.InvoiceRepo.CreateInvoice(ctx, inv)
}

func centsFromDecimalString(v string) (int64, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, err
	}
	return d.Mul(hundred).IntPart(), nil
}

func (s *InvoiceService) errorf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}
