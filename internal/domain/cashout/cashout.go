package cashout

import (
	"github.com/RKmodz24/studio/internal/domain/ledger"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/google/uuid"
)

// Workflow is the idle -> form_open -> processing -> idle state machine. It is
// owned by a session which serializes the calls.
type Workflow struct {
	state      entity.CashoutState
	remembered *entity.PayoutDetails
	inFlight   *entity.CashoutTransaction
}

func NewWorkflow(remembered *entity.PayoutDetails) *Workflow {
	return &Workflow{state: entity.CashoutIdle, remembered: remembered}
}

func (w *Workflow) State() entity.CashoutState {
	return w.state
}

// Remembered returns the payout details kept for prefill, nil if none.
func (w *Workflow) Remembered() *entity.PayoutDetails {
	return w.remembered
}

// InFlight returns the transaction being settled, nil if none.
func (w *Workflow) InFlight() *entity.CashoutTransaction {
	return w.inFlight
}

// Request opens the payout form. It fails without any state change when the
// balance is below the minimum payout.
func (w *Workflow) Request(l *ledger.Ledger) (*entity.PayoutDetails, error) {
	if w.state == entity.CashoutProcessing {
		return nil, errorx.New(errorx.InvalidState, "A cashout is being processed")
	}

	if !l.IsEligible() {
		return nil, errorx.New(errorx.BelowThreshold,
			"You need at least %s to cash out", l.Model().MinimumPayout.String())
	}

	w.state = entity.CashoutFormOpen
	return w.remembered, nil
}

// Submit captures the amount to settle. The snapshot is taken now and never
// re-read, so diamonds credited during the settlement delay are kept.
func (w *Workflow) Submit(
	l *ledger.Ledger, details entity.PayoutDetails, remember bool,
) (*entity.CashoutTransaction, error) {
	if w.state != entity.CashoutFormOpen {
		return nil, errorx.New(errorx.InvalidState, "The payout form is not open")
	}

	if !l.IsEligible() {
		w.state = entity.CashoutIdle
		return nil, errorx.New(errorx.BelowThreshold,
			"You need at least %s to cash out", l.Model().MinimumPayout.String())
	}

	if remember {
		d := details
		w.remembered = &d
	} else {
		w.remembered = nil
	}

	w.inFlight = &entity.CashoutTransaction{
		ID:       uuid.NewString(),
		Amount:   l.CurrencyBalance(),
		Diamonds: l.DiamondBalance(),
		Details:  details,
	}
	w.state = entity.CashoutProcessing
	return w.inFlight, nil
}

// Cancel closes an open payout form.
func (w *Workflow) Cancel() error {
	switch w.state {
	case entity.CashoutFormOpen:
		w.state = entity.CashoutIdle
		return nil
	case entity.CashoutIdle:
		return nil
	}

	return errorx.New(errorx.InvalidState, "A cashout is being processed")
}

// Settle drains the snapshot from the ledger and returns to idle. It returns
// nil if no transaction is in flight.
func (w *Workflow) Settle(l *ledger.Ledger) *entity.CashoutTransaction {
	if w.state != entity.CashoutProcessing || w.inFlight == nil {
		return nil
	}

	tx := w.inFlight
	tx.Amount = l.Settle(tx.Diamonds)

	w.inFlight = nil
	w.state = entity.CashoutIdle
	return tx
}
