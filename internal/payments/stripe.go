// Package payments wraps the Stripe API for salon service charges.
package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

// Charge is the processor-neutral view of a completed or attempted payment.
type Charge struct {
	ID          string    `json:"id"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateChargeInput carries everything needed to charge a card.
// PaymentMethodID is the token produced by the checkout frontend.
type CreateChargeInput struct {
	PaymentMethodID string
	AmountCents     int64
	Currency        string
	Description     string
	Email           string
	AppointmentID   string
}

// Processor charges cards and looks up past charges.
type Processor interface {
	CreateCharge(ctx context.Context, in CreateChargeInput) (*Charge, error)
	GetCharge(ctx context.Context, id string) (*Charge, error)
	ListCharges(ctx context.Context, email string, limit int64) ([]Charge, error)
}

// StripeProcessor implements Processor against Stripe. The client is held on
// the struct so tests and multi-tenant setups can run several instances with
// different keys.
type StripeProcessor struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeProcessor creates a processor authenticated with secretKey.
func NewStripeProcessor(secretKey string, logger *zap.Logger) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{api: api, logger: logger}
}

// CreateCharge confirms a payment immediately using the provided payment
// method. The client email and appointment id travel in metadata so charges
// can be found again by ListCharges.
func (p *StripeProcessor) CreateCharge(ctx context.Context, in CreateChargeInput) (*Charge, error) {
	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(in.AmountCents),
		Currency:      stripe.String(in.Currency),
		Description:   stripe.String(in.Description),
		PaymentMethod: stripe.String(in.PaymentMethodID),
		ReceiptEmail:  stripe.String(in.Email),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
	}
	params.AddMetadata("email", in.Email)
	if in.AppointmentID != "" {
		params.AddMetadata("appointment_id", in.AppointmentID)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		p.logger.Warn("stripe charge failed",
			zap.Int64("amount_cents", in.AmountCents),
			zap.String("currency", in.Currency),
			zap.Error(err))
		return nil, fmt.Errorf("creating charge: %w", err)
	}

	p.logger.Info("stripe charge created",
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount_cents", intent.Amount),
		zap.String("status", string(intent.Status)))
	return fromIntent(intent), nil
}

// GetCharge fetches a single charge by its payment intent id.
func (p *StripeProcessor) GetCharge(ctx context.Context, id string) (*Charge, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	intent, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("fetching charge %s: %w", id, err)
	}
	return fromIntent(intent), nil
}

// ListCharges returns recent charges, optionally filtered to one client's
// email via the metadata written by CreateCharge.
func (p *StripeProcessor) ListCharges(ctx context.Context, email string, limit int64) ([]Charge, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	query := "status:'succeeded'"
	if email != "" {
		query = fmt.Sprintf("metadata['email']:'%s'", email)
	}
	params := &stripe.PaymentIntentSearchParams{
		SearchParams: stripe.SearchParams{
			Context: ctx,
			Query:   query,
			Limit:   stripe.Int64(limit),
		},
	}

	var charges []Charge
	iter := p.api.PaymentIntents.Search(params)
	for iter.Next() {
		charges = append(charges, *fromIntent(iter.PaymentIntent()))
		if int64(len(charges)) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("listing charges: %w", err)
	}
	return charges, nil
}

func fromIntent(intent *stripe.PaymentIntent) *Charge {
	email := intent.ReceiptEmail
	if email == "" {
		email = intent.Metadata["email"]
	}
	return &Charge{
		ID:          intent.ID,
		AmountCents: intent.Amount,
		Currency:    string(intent.Currency),
		Status:      string(intent.Status),
		Description: intent.Description,
		Email:       email,
		CreatedAt:   time.Unix(intent.Created, 0).UTC(),
	}
}
