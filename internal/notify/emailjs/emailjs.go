// Package emailjs sends booking confirmations through the EmailJS
// transactional relay. One best-effort call per booking; failures are
// reported back and never retried here.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/everefficient/booking/internal/booking"
	"github.com/everefficient/booking/internal/logger"
	"github.com/everefficient/booking/internal/ticket"
)

const (
	defaultBaseURL = "https://api.emailjs.com"
	sendPath       = "/api/v1.0/email/send"
	defaultTimeout = 15 * time.Second

	// created_at is rendered the way the widget shows it in the email,
	// e.g. "8/30/2025, 7:12:45 PM".
	dateLayout = "1/2/2006, 3:04:05 PM"
)

var ErrRelayRejected = errors.New("email relay rejected the request")

type Conf struct {
	L          *logger.Logger
	ServiceID  string
	TemplateID string
	PublicKey  string
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	l          *logger.Logger
	serviceID  string
	templateID string
	publicKey  string
	baseURL    string
	httpClient *http.Client
}

func New(conf Conf) *Client {
	if conf.BaseURL == "" {
		conf.BaseURL = defaultBaseURL
	}

	if conf.HTTPClient == nil {
		conf.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		l:          conf.L,
		serviceID:  conf.ServiceID,
		templateID: conf.TemplateID,
		publicKey:  conf.PublicKey,
		baseURL:    conf.BaseURL,
		httpClient: conf.HTTPClient,
	}
}

type envelope struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	RefNumber        string `json:"ref_number"`
	Name             string `json:"name"`
	Contact          string `json:"contact"`
	Email            string `json:"email"`
	NIC              string `json:"nic,omitempty"`
	Date             string `json:"date"`
	VIPTickets       int    `json:"vip_tickets"`
	GeneralTickets   int    `json:"general_tickets"`
	EarlyBirdTickets int    `json:"earlybird_tickets"`
	TotalPrice       string `json:"total_price"`
}

// SendConfirmation posts the booking snapshot to the relay and reports the
// binary outcome. No structured error payload is consumed beyond "failed".
func (c *Client) SendConfirmation(ctx context.Context, confirmation *booking.Confirmation) error {
	start := time.Now().UTC()

	body, err := json.Marshal(envelope{
		ServiceID:  c.serviceID,
		TemplateID: c.templateID,
		UserID:     c.publicKey,
		TemplateParams: templateParams{
			RefNumber:        confirmation.RefNumber,
			Name:             confirmation.Name,
			Contact:          confirmation.Contact,
			Email:            confirmation.Email,
			NIC:              confirmation.NIC,
			Date:             confirmation.Date.Format(dateLayout),
			VIPTickets:       confirmation.Selection.Quantity(ticket.TierVIP),
			GeneralTickets:   confirmation.Selection.Quantity(ticket.TierGeneral),
			EarlyBirdTickets: confirmation.Selection.Quantity(ticket.TierEarlyBird),
			TotalPrice:       ticket.FormatLKR(confirmation.Total),
		},
	})
	if err != nil {
		return fmt.Errorf("marshal relay envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send confirmation for ref %v: %w", confirmation.RefNumber, err)
	}

	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	var traceID string

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		traceID = sc.TraceID().String()
	}

	c.l.LogInfo(
		"type: relay, ref: %s, status: %d, traceID: %s, latency: %s",
		confirmation.RefNumber,
		resp.StatusCode,
		traceID,
		time.Since(start),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("relay responded %v: %w", resp.Status, ErrRelayRejected)
	}

	return nil
}
