package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"

	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
)

const (
	timekeeperIdlePoll      = 5 * time.Second
	timekeeperSettleBackoff = time.Second
)

// Timekeeper is the authoritative observer of the bidding clock. It sleeps
// until the live auction's deadline, then hands settlement to the worker
// pool. Bids and starts move the deadline, so the services wake it instead
// of letting it sleep on a stale timer.
type Timekeeper struct {
	svc    *AuctionService
	clock  clockwork.Clock
	pool   *ants.Pool
	logger *logging.Logger
	wakeCh chan struct{}
}

func NewTimekeeper(svc *AuctionService, clock clockwork.Clock, pool *ants.Pool, logger *logging.Logger) *Timekeeper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Timekeeper{
		svc:    svc,
		clock:  clock,
		pool:   pool,
		logger: logger,
		wakeCh: make(chan struct{}, 1),
	}
}

// Wake nudges the scheduler loop; safe to call from any goroutine and
// never blocks.
func (t *Timekeeper) Wake() {
	select {
	case t.wakeCh <- struct{}{}:
	default:
	}
}

// Run drives the scheduler loop until ctx is cancelled.
func (t *Timekeeper) Run(ctx context.Context) error {
	t.logger.Info("timekeeper started")

	timer := t.clock.NewTimer(timekeeperIdlePoll)
	defer timer.Stop()

	for {
		// Drain a pending wake so a nudge sent while we were working does
		// not spin the loop an extra time.
		select {
		case <-t.wakeCh:
		default:
		}

		deadline, ok, err := t.svc.Deadline(ctx)
		if err != nil {
			t.logger.ErrorContext(ctx, "fetch auction deadline", "error", err)
			timer.Reset(timekeeperIdlePoll)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				return nil
			}
		}

		if !ok {
			// Idle: nothing on the block. Poll occasionally in case a wake
			// was lost across a restart.
			timer.Reset(timekeeperIdlePoll)
			select {
			case <-timer.Chan():
				continue
			case <-t.wakeCh:
				continue
			case <-ctx.Done():
				t.logger.Info("timekeeper stopped while idle")
				return nil
			}
		}

		wait := deadline.Sub(t.clock.Now())
		if wait <= 0 {
			t.dispatchSettlement(ctx)
			// Back off briefly so a slow settlement write does not turn
			// this loop into a busy spin on the same expired deadline.
			timer.Reset(timekeeperSettleBackoff)
			select {
			case <-timer.Chan():
				continue
			case <-t.wakeCh:
				continue
			case <-ctx.Done():
				return nil
			}
		}

		timer.Reset(wait)
		select {
		case <-timer.Chan():
			t.dispatchSettlement(ctx)
		case <-t.wakeCh:
			// Deadline moved; recompute.
		case <-ctx.Done():
			t.logger.Info("timekeeper stopped")
			return nil
		}
	}
}

func (t *Timekeeper) dispatchSettlement(ctx context.Context) {
	run := func() {
		_, err := t.svc.SettleExpired(ctx)
		if err != nil && !errors.Is(err, ErrConflict) {
			t.logger.ErrorContext(ctx, "settle expired auction", "error", err)
			return
		}
		if err == nil {
			t.Wake()
		}
	}

	if t.pool == nil {
		go run()
		return
	}
	if err := t.pool.Submit(run); err != nil {
		t.logger.ErrorContext(ctx, "submit settlement to pool", "error", err)
	}
}
