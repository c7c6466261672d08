package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/everefficient/booking/internal/logger"
	"github.com/everefficient/booking/internal/ticket"
)

type dispatcher interface {
	SendConfirmation(ctx context.Context, confirmation *Confirmation) error
}

type refGenerator interface {
	Next(at time.Time) string
}

type history interface {
	Append(record Record)
}

// Options tunes the flow for the variants the widget shipped with.
type Options struct {
	// CollectNIC adds the national-ID field and its validation rule.
	CollectNIC bool
	// PaymentStage inserts the payment-instructions stage between ticket
	// selection and the final confirmation.
	PaymentStage bool
	// EarlyBirdSoldOut removes EARLYBIRD from the selectable tiers.
	EarlyBirdSoldOut bool
	// PreserveOnDismiss keeps entered fields across a dialog dismissal
	// instead of discarding them. Off by default to match the shipped
	// widget, pending product clarification.
	PreserveOnDismiss bool
	// NoticeLife is how long a transient notification stays visible.
	NoticeLife time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

const defaultNoticeLife = 4 * time.Second

// Manager drives one booking session through the dialog flow.
type Manager struct {
	l        *logger.Logger
	dispatch dispatcher
	refs     refGenerator
	history  history
	notify   func(Notice)
	opts     Options

	mu       sync.Mutex
	session  Session
	gen      uint64
	inflight bool
}

func New(l *logger.Logger, dispatch dispatcher, refs refGenerator, history history, notify func(Notice), opts Options) *Manager {
	if opts.NoticeLife <= 0 {
		opts.NoticeLife = defaultNoticeLife
	}

	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	if notify == nil {
		notify = func(Notice) {}
	}

	m := &Manager{
		l:        l,
		dispatch: dispatch,
		refs:     refs,
		history:  history,
		notify:   notify,
		opts:     opts,
	}

	m.session = m.blankSession()

	return m
}

func (m *Manager) blankSession() Session {
	return Session{
		Selection:   ticket.NewSelection(),
		Stage:       StageClosed,
		FieldErrors: make(FieldErrors),
	}
}

// Snapshot returns a copy of everything the presentation layer renders.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Stage:       m.session.Stage,
		RefNumber:   m.session.RefNumber,
		CreatedAt:   m.session.CreatedAt,
		Buyer:       m.session.Buyer,
		Selection:   m.session.Selection.Clone(),
		FieldErrors: m.session.FieldErrors.Clone(),
		Total:       m.session.Selection.Total(),
		Dispatching: m.inflight,
	}
}

// Tiers returns the tiers currently open for selection.
func (m *Manager) Tiers() []ticket.Tier {
	tiers := make([]ticket.Tier, 0, len(ticket.Tiers))

	for _, tier := range ticket.Tiers {
		if m.opts.EarlyBirdSoldOut && tier == ticket.TierEarlyBird {
			continue
		}

		tiers = append(tiers, tier)
	}

	return tiers
}

func (m *Manager) CollectsNIC() bool {
	return m.opts.CollectNIC
}

// Open starts a fresh booking attempt: new reference number, new capture
// timestamp, cleared errors. Entered fields survive only when the flow was
// dismissed with PreserveOnDismiss set.
func (m *Manager) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Stage != StageClosed {
		return ErrStage
	}

	now := m.opts.Now()
	buyer := Buyer{}
	selection := ticket.NewSelection()

	if m.opts.PreserveOnDismiss {
		buyer = m.session.Buyer
		selection = m.session.Selection.Clone()
	}

	m.session = Session{
		ID:          uuid.New(),
		RefNumber:   m.refs.Next(now),
		CreatedAt:   now,
		Buyer:       buyer,
		Selection:   selection,
		Stage:       StageSelectingTickets,
		FieldErrors: make(FieldErrors),
	}

	m.l.LogInfo("Booking dialog opened, session %v, ref %v", m.session.ID, m.session.RefNumber)

	return nil
}

// SetField updates a buyer field and optimistically clears that field's
// error. The value is not re-validated until the next proceed or confirm.
func (m *Manager) SetField(field Field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Stage == StageClosed {
		return ErrClosed
	}

	switch field {
	case FieldName:
		m.session.Buyer.Name = value
	case FieldContact:
		m.session.Buyer.Contact = value
	case FieldEmail:
		m.session.Buyer.Email = value
	case FieldNIC:
		m.session.Buyer.NIC = value
	}

	delete(m.session.FieldErrors, field)

	return nil
}

// SetQuantity updates the requested count for a tier, clamped to the allowed
// range.
func (m *Manager) SetQuantity(tier ticket.Tier, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Stage == StageClosed {
		return ErrClosed
	}

	if m.opts.EarlyBirdSoldOut && tier == ticket.TierEarlyBird {
		return ErrTierUnavailable
	}

	m.session.Selection.Set(tier, quantity)

	return nil
}

func (m *Manager) revalidate() *ValidationError {
	fields := Validate(m.session.Buyer, m.opts.CollectNIC)
	m.session.FieldErrors = fields

	if fields.Empty() {
		return nil
	}

	return newValidationError(fields)
}

// Proceed advances past ticket selection. It is gated on a non-zero total and
// on every field rule passing; a failed gate leaves the stage unchanged.
func (m *Manager) Proceed() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Stage != StageSelectingTickets {
		return ErrStage
	}

	if m.session.Selection.Total() == 0 {
		return ErrEmptySelection
	}

	if validationErr := m.revalidate(); validationErr != nil {
		return validationErr
	}

	if m.opts.PaymentStage {
		m.session.Stage = StageConfirmingPayment
	} else {
		m.session.Stage = StageAwaitingFinalConfirmation
	}

	return nil
}

// Back returns from the payment instructions to ticket selection without
// losing entered data.
func (m *Manager) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Stage != StageConfirmingPayment {
		return ErrStage
	}

	m.session.Stage = StageSelectingTickets

	return nil
}

// Decline backs out of the final confirmation to ticket selection. It is
// rejected while a dispatch is in flight: backing out then would let the
// late result reset a session the user is editing again.
func (m *Manager) Decline() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Stage != StageAwaitingFinalConfirmation {
		return ErrStage
	}

	if m.inflight {
		return ErrDispatchInFlight
	}

	m.session.Stage = StageSelectingTickets

	return nil
}

// Confirm moves the flow forward from the payment instructions, or, at the
// final confirmation, finalizes the booking: it re-validates, then dispatches
// the confirmation email asynchronously. The triggering control stays
// disabled until the dispatch completes; a second Confirm while one is in
// flight is rejected.
func (m *Manager) Confirm(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.session.Stage {
	case StageConfirmingPayment:
		m.session.Stage = StageAwaitingFinalConfirmation

		return nil
	case StageAwaitingFinalConfirmation:
		return m.finalize(ctx)
	default:
		return ErrStage
	}
}

// finalize runs under m.mu.
func (m *Manager) finalize(ctx context.Context) error {
	if m.inflight {
		return ErrDispatchInFlight
	}

	if m.dispatch == nil {
		return ErrDispatchUnavailable
	}

	if validationErr := m.revalidate(); validationErr != nil {
		return validationErr
	}

	m.gen++
	m.inflight = true

	gen := m.gen
	confirmation := &Confirmation{
		SessionID: m.session.ID,
		RefNumber: m.session.RefNumber,
		Name:      m.session.Buyer.Name,
		Contact:   m.session.Buyer.Contact,
		Email:     m.session.Buyer.Email,
		NIC:       NormalizeNIC(m.session.Buyer.NIC),
		Date:      m.session.CreatedAt,
		Selection: m.session.Selection.Clone(),
		Total:     m.session.Selection.Total(),
	}

	go m.runDispatch(ctx, gen, confirmation)

	return nil
}

func (m *Manager) runDispatch(ctx context.Context, gen uint64, confirmation *Confirmation) {
	err := m.dispatch.SendConfirmation(ctx, confirmation)

	m.mu.Lock()

	if gen != m.gen {
		m.mu.Unlock()

		// The session was dismissed or superseded while the call was in
		// flight; a late toast over a reset dialog would be wrong.
		m.l.LogInfo("Discarding stale dispatch result for ref %v", confirmation.RefNumber)

		return
	}

	m.inflight = false

	if m.history != nil {
		m.history.Append(Record{
			SessionID: confirmation.SessionID,
			RefNumber: confirmation.RefNumber,
			Buyer: Buyer{
				Name:    confirmation.Name,
				Contact: confirmation.Contact,
				Email:   confirmation.Email,
				NIC:     confirmation.NIC,
			},
			Selection:  confirmation.Selection,
			Total:      confirmation.Total,
			CreatedAt:  confirmation.Date,
			EmailSent:  err == nil,
			FinishedAt: m.opts.Now(),
		})
	}

	m.session = m.blankSession()
	m.mu.Unlock()

	// The booking is confirmed either way; only the confirmation channel
	// can fail, and it is not retried.
	if err != nil {
		m.l.LogErrorf("Failed to send confirmation email for ref %v: %v", confirmation.RefNumber, err.Error())
		m.notify(Notice{
			Severity: SeverityError,
			Summary:  "Email Error",
			Detail:   "There was an issue sending your confirmation email. Your booking is still confirmed.",
			Life:     m.opts.NoticeLife,
		})
	} else {
		m.l.LogInfo("Booking confirmed and email sent, ref %v", confirmation.RefNumber)
		m.notify(Notice{
			Severity: SeveritySuccess,
			Summary:  "Booking Confirmed",
			Detail:   "Your tickets have been successfully booked! A confirmation has been sent to your email.",
			Life:     m.opts.NoticeLife,
		})
	}
}

// Dismiss closes the dialog from any stage. Unless PreserveOnDismiss is set,
// all entered data is discarded, even mid-entry. An in-flight dispatch is
// invalidated so its late result cannot reach the next session.
func (m *Manager) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Stage == StageClosed {
		return
	}

	if m.inflight {
		m.gen++
		m.inflight = false
		m.l.LogWarnf("Dialog dismissed with a confirmation dispatch in flight, ref %v", m.session.RefNumber)
	}

	if m.opts.PreserveOnDismiss {
		m.session.Stage = StageClosed
		m.session.FieldErrors = make(FieldErrors)
	} else {
		m.session = m.blankSession()
	}

	m.l.LogInfo("Booking dialog dismissed")
}
