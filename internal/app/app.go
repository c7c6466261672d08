package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/everefficient/booking/internal/booking"
	"github.com/everefficient/booking/internal/config"
	"github.com/everefficient/booking/internal/countdown"
	"github.com/everefficient/booking/internal/logger"
	"github.com/everefficient/booking/internal/notify/emailjs"
	"github.com/everefficient/booking/internal/refgen/timeref"
	"github.com/everefficient/booking/internal/storage/memory"
	"github.com/everefficient/booking/internal/transport/term"
)

func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	relay := emailjs.New(emailjs.Conf{
		L:          l,
		ServiceID:  cfg.Relay.ServiceID,
		TemplateID: cfg.Relay.TemplateID,
		PublicKey:  cfg.Relay.PublicKey,
		BaseURL:    cfg.Relay.BaseURL,
	})

	storage := memory.New(memory.Config{L: l})

	ui := term.New(term.Conf{
		L:     l,
		In:    os.Stdin,
		Out:   os.Stdout,
		Title: cfg.Event.Title,
		Venue: cfg.Event.Venue,
	})

	manager := booking.New(l, relay, timeref.New(), storage, ui.ShowNotice, booking.Options{
		CollectNIC:        cfg.Flow.CollectNIC,
		PaymentStage:      cfg.Flow.PaymentStage,
		EarlyBirdSoldOut:  cfg.Flow.EarlyBirdSoldOut,
		PreserveOnDismiss: cfg.Flow.PreserveOnDismiss,
	})

	ui.Attach(manager, storage)

	timer := countdown.New(cfg.Event.Starts)

	l.LogInfo("Booking widget for %q is running...", cfg.Event.Title)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		timer.Run(gCtx, ui.SetCountdown)

		return nil
	})

	g.Go(func() error {
		defer cancel()

		return ui.Run(gCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run widget: %w", err)
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
