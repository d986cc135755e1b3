package share

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkdrop/internal/config"
	"linkdrop/internal/launcher"
)

// Store is the slice of the record store the consumer needs. *Repo
// satisfies it; tests substitute a fake.
type Store interface {
	FetchPending(ctx context.Context, limit int) ([]Record, error)
	MarkDelivered(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Summary reports one pass over the pending set.
type Summary struct {
	Delivered      int
	Failed         int
	RetireFailures int
}

// Stats is the running total across passes, snapshotted for the status server.
type Stats struct {
	Delivered      int64     `json:"delivered"`
	Failed         int64     `json:"failed"`
	RetireFailures int64     `json:"retireFailures"`
	Passes         int64     `json:"passes"`
	LastPass       time.Time `json:"lastPass"`
}

// Consumer drains pending share records into the local browser, one at a
// time, oldest first. Each record is opened and then retired before the
// next one is touched: a crash in between costs at most a duplicate tab,
// never a lost URL.
type Consumer struct {
	store    Store
	launcher launcher.Launcher
	log      *zap.Logger

	batchSize int
	retire    config.RetireMode
	interval  time.Duration

	mu    sync.Mutex
	stats Stats
}

func NewConsumer(store Store, l launcher.Launcher, log *zap.Logger, cfg config.Config) *Consumer {
	return &Consumer{
		store:     store,
		launcher:  l,
		log:       log,
		batchSize: cfg.BatchSize,
		retire:    cfg.RetireMode,
		interval:  cfg.PollInterval,
	}
}

// RunOnce performs a single fetch-deliver-retire pass. Per-record
// failures are isolated and counted; only fetch errors are returned.
func (c *Consumer) RunOnce(ctx context.Context) (Summary, error) {
	log := c.log.With(zap.String("run_id", uuid.NewString()))

	records, err := c.store.FetchPending(ctx, c.batchSize)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, rec := range records {
		// shutdown stops between records, never inside a deliver
		if ctx.Err() != nil {
			break
		}

		retireErr, err := c.deliver(ctx, rec)
		if err != nil {
			sum.Failed++
			log.Error("delivery failed, record stays pending",
				zap.String("id", rec.ID),
				zap.String("url", rec.URL),
				zap.Error(err))
			continue
		}
		sum.Delivered++
		log.Info("opened url", zap.String("id", rec.ID), zap.String("url", rec.URL))

		if retireErr != nil {
			sum.RetireFailures++
			log.Error("retire failed after open, next run may deliver a duplicate",
				zap.String("id", rec.ID),
				zap.Error(retireErr))
		}
	}

	c.record(sum)
	log.Info("pass complete",
		zap.Int("delivered", sum.Delivered),
		zap.Int("failed", sum.Failed))

	return sum, nil
}

// Run polls until the context is canceled. Query failures are logged and
// retried at the next tick.
func (c *Consumer) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		if _, err := c.RunOnce(ctx); err != nil {
			if errors.Is(err, ErrAuth) {
				return err
			}
			c.log.Error("pass failed, retrying at next interval", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Stats returns a snapshot of the running totals.
func (c *Consumer) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// deliver opens one record and retires it. The open error is err; a
// retire failure after a successful open comes back separately because
// the record still counts as delivered.
func (c *Consumer) deliver(ctx context.Context, rec Record) (retireErr, err error) {
	if openErr := c.launcher.Open(rec.URL); openErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, openErr)
	}

	// The retire must not be cut short by shutdown once the URL is open.
	return c.retireRecord(context.WithoutCancel(ctx), rec.ID), nil
}

func (c *Consumer) retireRecord(ctx context.Context, id string) error {
	if c.retire == config.RetireDelete {
		return c.store.Delete(ctx, id)
	}
	return c.store.MarkDelivered(ctx, id)
}

func (c *Consumer) record(sum Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Delivered += int64(sum.Delivered)
	c.stats.Failed += int64(sum.Failed)
	c.stats.RetireFailures += int64(sum.RetireFailures)
	c.stats.Passes++
	c.stats.LastPass = time.Now().UTC()
}
