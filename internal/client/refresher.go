/* Copyright (c) 2025 David Bulkow */

package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dbulkow/classrooms/api"
	"github.com/dbulkow/classrooms/internal/schedule"
)

// Refresher periodically refetches the current day's reservations and
// hands them to onUpdate; a nil onUpdate drops the results. Fetch
// failures are logged and dropped so a flaky network never interrupts
// whoever is looking at the timeline.
type Refresher struct {
	client   *Client
	interval time.Duration
	clock    schedule.Clock
	log      *zap.Logger
	onUpdate func([]api.Reservation)
}

func NewRefresher(client *Client, interval time.Duration, clock schedule.Clock, log *zap.Logger, onUpdate func([]api.Reservation)) *Refresher {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	return &Refresher{
		client:   client,
		interval: interval,
		clock:    clock,
		log:      log,
		onUpdate: onUpdate,
	}
}

// Run polls immediately and then on every interval tick until ctx is
// canceled. onUpdate runs on the refresher's goroutine; it is the
// caller's completion handoff back to wherever state lives.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.poll(ctx)
		}
	}
}

func (r *Refresher) poll(ctx context.Context) {
	date := r.clock.Now().Format(api.DateFormat)

	reservations, err := r.client.Reservations(ctx, date)
	if err != nil {
		r.log.Warn("reservation refresh failed", zap.String("date", date), zap.Error(err))
		return
	}

	if r.onUpdate != nil {
		r.onUpdate(reservations)
	}
}
