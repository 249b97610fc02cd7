package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/budgetfold/backend/internal/models"
)

// EnvelopeCreate contains all user settable fields for a new envelope.
type EnvelopeCreate struct {
	Name   string
	Budget decimal.Decimal
}

// EnvelopeUpdate contains the fields of a partial envelope update. Nil
// fields keep their stored value.
type EnvelopeUpdate struct {
	Name   *string
	Budget *decimal.Decimal
}

// TransferResult reports both envelopes after a completed transfer.
type TransferResult struct {
	Source models.Envelope
	Target models.Envelope
}

// CreateEnvelope validates the input and persists a new envelope with an
// assigned id.
func (l *Ledger) CreateEnvelope(ctx context.Context, userID uint64, create EnvelopeCreate) (models.Envelope, error) {
	envelope := models.Envelope{
		UserID: userID,
		Name:   create.Name,
		Budget: create.Budget,
	}

	if err := envelope.Validate(); err != nil {
		return models.Envelope{}, err
	}

	if err := l.store.CreateEnvelope(ctx, &envelope); err != nil {
		return models.Envelope{}, err
	}

	return envelope, nil
}

// UpdateEnvelope merges the supplied fields into the stored envelope and
// writes it back. Fields that are not supplied keep their stored value.
func (l *Ledger) UpdateEnvelope(ctx context.Context, userID, id uint64, update EnvelopeUpdate) (models.Envelope, error) {
	envelope, err := l.store.Envelope(ctx, userID, id)
	if err != nil {
		return models.Envelope{}, err
	}

	if update.Name != nil {
		envelope.Name = *update.Name
	}
	if update.Budget != nil {
		envelope.Budget = *update.Budget
	}

	if err := envelope.Validate(); err != nil {
		return models.Envelope{}, err
	}

	return l.store.UpdateEnvelope(ctx, envelope)
}

// DeleteEnvelope removes the envelope. Transactions referencing it are kept.
func (l *Ledger) DeleteEnvelope(ctx context.Context, userID, id uint64) error {
	return l.store.DeleteEnvelope(ctx, userID, id)
}

// Transfer moves budget from one envelope to another. Both sides change in
// one paired write or not at all.
//
// There is deliberately no check that the source envelope holds enough
// budget: a transfer that would drive it negative fails the envelope
// validation inside the paired write and rolls back both sides.
func (l *Ledger) Transfer(ctx context.Context, userID, fromID, toID uint64, amount decimal.Decimal) (TransferResult, error) {
	var from, to models.Envelope

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		from, err = l.store.Envelope(gctx, userID, fromID)
		return err
	})
	g.Go(func() (err error) {
		to, err = l.store.Envelope(gctx, userID, toID)
		return err
	})
	if err := g.Wait(); err != nil {
		return TransferResult{}, err
	}

	from.Budget = from.Budget.Sub(amount)
	to.Budget = to.Budget.Add(amount)

	from, to, err := l.store.UpdateEnvelopePair(ctx, from, to)
	if err != nil {
		// Validation and lookup failures are caller correctable, anything
		// else means the paired write itself did not complete.
		if errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrResourceNotFound) {
			return TransferResult{}, err
		}

		return TransferResult{}, fmt.Errorf("%w: %s", models.ErrTransferFailed, err)
	}

	return TransferResult{Source: from, Target: to}, nil
}
