package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Event Event
	Relay Relay
	Flow  Flow
}

// Event is the fixed metadata of the single event the widget sells.
type Event struct {
	Title  string
	Venue  string
	Starts time.Time
}

// Relay holds the EmailJS credentials. Defaults match the deployed widget.
type Relay struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	BaseURL    string
}

// Flow selects between the widget variants that shipped.
type Flow struct {
	CollectNIC        bool
	PaymentStage      bool
	EarlyBirdSoldOut  bool
	PreserveOnDismiss bool
}

const (
	defaultEventTitle = "Nuwara Aale - Chapter 01"
	defaultEventVenue = "Sahas Uyana - Kandy"
	defaultEventStart = "2025-08-30T19:00:00"

	defaultServiceID  = "service_klav3nr"
	defaultTemplateID = "template_abmb1me"
	defaultPublicKey  = "dhGmVpAlLONpEZzF2"
)

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	startsStr := getEnvWithDefault("EVENT_STARTS", defaultEventStart)

	starts, err := time.ParseInLocation("2006-01-02T15:04:05", startsStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid EVENT_STARTS: %w", op, err)
	}

	eventCfg := Event{
		Title:  getEnvWithDefault("EVENT_TITLE", defaultEventTitle),
		Venue:  getEnvWithDefault("EVENT_VENUE", defaultEventVenue),
		Starts: starts,
	}

	relayCfg := Relay{
		ServiceID:  getEnvWithDefault("EMAILJS_SERVICE_ID", defaultServiceID),
		TemplateID: getEnvWithDefault("EMAILJS_TEMPLATE_ID", defaultTemplateID),
		PublicKey:  getEnvWithDefault("EMAILJS_PUBLIC_KEY", defaultPublicKey),
		BaseURL:    os.Getenv("EMAILJS_BASE_URL"),
	}

	var flowCfg Flow

	if flowCfg.CollectNIC, err = getBoolWithDefault("FLOW_COLLECT_NIC", true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if flowCfg.PaymentStage, err = getBoolWithDefault("FLOW_PAYMENT_STAGE", true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if flowCfg.EarlyBirdSoldOut, err = getBoolWithDefault("FLOW_EARLYBIRD_SOLD_OUT", false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if flowCfg.PreserveOnDismiss, err = getBoolWithDefault("FLOW_PRESERVE_ON_DISMISS", false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Config{
		Event: eventCfg,
		Relay: relayCfg,
		Flow:  flowCfg,
	}, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getBoolWithDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, nil
}
