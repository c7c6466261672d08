package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/everefficient/booking/internal/ticket"
)

// Stage is a position in the booking dialog flow.
type Stage string

const (
	StageClosed                    Stage = "Closed"
	StageSelectingTickets          Stage = "SelectingTickets"
	StageConfirmingPayment         Stage = "ConfirmingPayment"
	StageAwaitingFinalConfirmation Stage = "AwaitingFinalConfirmation"
)

// Field names a buyer-supplied input of the booking form.
type Field string

const (
	FieldName    Field = "name"
	FieldContact Field = "contact"
	FieldEmail   Field = "email"
	FieldNIC     Field = "nic"
)

// Buyer holds the free-text fields entered into the form.
type Buyer struct {
	Name    string `json:"name" validate:"notblank"`
	Contact string `json:"contact" validate:"contact10"`
	Email   string `json:"email" validate:"emailshape"`
	NIC     string `json:"nic" validate:"nic"`
}

// Session is one in-progress booking attempt. Exactly one session is live
// at a time; it is rebuilt on every dialog open and torn down on close.
type Session struct {
	ID          uuid.UUID        `json:"id"`
	RefNumber   string           `json:"ref_number"`
	CreatedAt   time.Time        `json:"created_at"`
	Buyer       Buyer            `json:"buyer"`
	Selection   ticket.Selection `json:"selection"`
	Stage       Stage            `json:"stage"`
	FieldErrors FieldErrors      `json:"field_errors"`
}

// Snapshot is the read side of the rendering boundary.
type Snapshot struct {
	Stage       Stage
	RefNumber   string
	CreatedAt   time.Time
	Buyer       Buyer
	Selection   ticket.Selection
	FieldErrors FieldErrors
	Total       int
	Dispatching bool
}

// Severity classifies a transient notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a transient toast-style notification for the presentation layer.
type Notice struct {
	Severity Severity
	Summary  string
	Detail   string
	Life     time.Duration
}

// Confirmation is the payload handed to the notification dispatcher once a
// booking is finalized.
type Confirmation struct {
	SessionID uuid.UUID
	RefNumber string
	Name      string
	Contact   string
	Email     string
	NIC       string
	Date      time.Time
	Selection ticket.Selection
	Total     int
}

// Record is a completed attempt kept by the in-memory history.
type Record struct {
	SessionID  uuid.UUID
	RefNumber  string
	Buyer      Buyer
	Selection  ticket.Selection
	Total      int
	CreatedAt  time.Time
	EmailSent  bool
	FinishedAt time.Time
}
