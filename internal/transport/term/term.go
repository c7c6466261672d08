// Package term is the presentation layer of the widget core: it renders the
// flow snapshot and countdown, and translates line commands into field
// edits, quantity changes and stage actions.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/everefficient/booking/internal/booking"
	"github.com/everefficient/booking/internal/countdown"
	"github.com/everefficient/booking/internal/logger"
	"github.com/everefficient/booking/internal/storage/memory"
	"github.com/everefficient/booking/internal/ticket"
)

type Conf struct {
	L     *logger.Logger
	In    io.Reader
	Out   io.Writer
	Title string
	Venue string
}

type UI struct {
	l       *logger.Logger
	in      io.Reader
	out     io.Writer
	title   string
	venue   string
	manager *booking.Manager
	history *memory.DB

	mu        sync.Mutex
	remaining countdown.Remaining
}

func New(conf Conf) *UI {
	return &UI{
		l:     conf.L,
		in:    conf.In,
		out:   conf.Out,
		title: conf.Title,
		venue: conf.Venue,
	}
}

// Attach wires the flow manager and history once they exist; the manager's
// notifier needs the UI first.
func (u *UI) Attach(manager *booking.Manager, history *memory.DB) {
	u.manager = manager
	u.history = history
}

// ShowNotice prints a transient notification the way the widget toasts it.
func (u *UI) ShowNotice(notice booking.Notice) {
	fmt.Fprintf(u.out, "\n[%s] %s: %s (visible %s)\n", notice.Severity, notice.Summary, notice.Detail, notice.Life)
}

// SetCountdown stores the latest countdown tick for the next render.
func (u *UI) SetCountdown(remaining countdown.Remaining) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.remaining = remaining
}

func (u *UI) countdownLine() string {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.remaining.Zero() {
		return "The show has started!"
	}

	return fmt.Sprintf(
		"%dd %02dh %02dm %02ds until showtime",
		u.remaining.Days,
		u.remaining.Hours,
		u.remaining.Minutes,
		u.remaining.Seconds,
	)
}

// Run reads commands until ctx is cancelled or the input ends.
func (u *UI) Run(ctx context.Context) error {
	fmt.Fprintf(u.out, "%s | %s\n", u.title, u.venue)
	fmt.Fprintln(u.out, `Type "book" to start, "help" for commands.`)

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(u.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read commands: %w", err)
				}

				return nil
			}

			if quit := u.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

//nolint:cyclop // a flat command switch reads best
func (u *UI) handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

	var err error

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "help":
		u.printHelp()
	case "countdown":
		fmt.Fprintln(u.out, u.countdownLine())
	case "book":
		err = u.manager.Open()
	case "name":
		err = u.manager.SetField(booking.FieldName, arg)
	case "contact":
		err = u.manager.SetField(booking.FieldContact, arg)
	case "email":
		err = u.manager.SetField(booking.FieldEmail, arg)
	case "nic":
		err = u.manager.SetField(booking.FieldNIC, arg)
	case "next":
		err = u.manager.Proceed()
	case "back":
		err = u.manager.Back()
	case "confirm":
		err = u.manager.Confirm(ctx)
	case "no":
		err = u.manager.Decline()
	case "close":
		u.manager.Dismiss()
	case "history":
		u.printHistory()
	case "lookup":
		u.printRecord(arg)
	default:
		// Tier names double as quantity commands, e.g. "vip 2".
		tier, parseErr := ticket.Parse(strings.ToUpper(cmd))
		if parseErr != nil {
			fmt.Fprintf(u.out, "Unknown command %q, try \"help\"\n", cmd)

			return false
		}

		err = u.setQuantity(tier, arg)
	}

	if validationErr := booking.IsValidationError(err); validationErr != nil {
		err = nil
	}

	if err != nil {
		fmt.Fprintf(u.out, "! %v\n", err)

		return false
	}

	u.render()

	return false
}

func (u *UI) setQuantity(tier ticket.Tier, arg string) error {
	quantity, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("quantity must be a number: %w", err)
	}

	return u.manager.SetQuantity(tier, quantity)
}

func (u *UI) render() {
	snapshot := u.manager.Snapshot()

	if snapshot.Stage == booking.StageClosed {
		fmt.Fprintln(u.out, "-- dialog closed --")

		return
	}

	fmt.Fprintf(u.out, "-- %s | ref %s --\n", snapshot.Stage, snapshot.RefNumber)

	for _, tier := range u.manager.Tiers() {
		fmt.Fprintf(u.out, "  %-10s %s x %d\n", tier, ticket.FormatLKR(ticket.Prices[tier]), snapshot.Selection.Quantity(tier))
	}

	fmt.Fprintf(u.out, "  Total: %s\n", ticket.FormatLKR(snapshot.Total))
	fmt.Fprintf(u.out, "  Name: %q  Contact: %q  Email: %q", snapshot.Buyer.Name, snapshot.Buyer.Contact, snapshot.Buyer.Email)

	if u.manager.CollectsNIC() {
		fmt.Fprintf(u.out, "  NIC: %q", snapshot.Buyer.NIC)
	}

	fmt.Fprintln(u.out)

	for field, msg := range snapshot.FieldErrors {
		fmt.Fprintf(u.out, "  %s: %s\n", field, msg)
	}

	if snapshot.Dispatching {
		fmt.Fprintln(u.out, "  Sending confirmation...")
	}
}

func (u *UI) printRecord(ref string) {
	record, ok := u.history.ByRef(strings.TrimSpace(ref))
	if !ok {
		fmt.Fprintf(u.out, "No booking with ref %q\n", ref)

		return
	}

	fmt.Fprintf(
		u.out,
		"%s | %s | %s | email sent: %v\n",
		record.RefNumber,
		record.Buyer.Name,
		ticket.FormatLKR(record.Total),
		record.EmailSent,
	)
}

func (u *UI) printHistory() {
	records := u.history.All()
	if len(records) == 0 {
		fmt.Fprintln(u.out, "No bookings yet")

		return
	}

	for _, record := range records {
		fmt.Fprintf(
			u.out,
			"%s | %s | %s | email sent: %v | %s\n",
			record.RefNumber,
			record.Buyer.Name,
			ticket.FormatLKR(record.Total),
			record.EmailSent,
			record.FinishedAt.Format(time.RFC3339),
		)
	}
}

func (u *UI) printHelp() {
	fmt.Fprintln(u.out, `Commands:
  book                       open the booking dialog
  name|contact|email|nic V   set a buyer field
  vip|general|earlybird N    set a ticket quantity
  lookup REF                 show one completed booking
  next                       proceed past ticket selection
  back                       back from payment instructions
  confirm                    confirm (payment stage or final)
  no                         decline the final confirmation
  close                      dismiss the dialog
  countdown                  show time until the event
  history                    show all completed bookings
  quit                       exit`)
}
