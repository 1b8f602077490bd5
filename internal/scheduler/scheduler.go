package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"

	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/reporter"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic output cycles. A cycle still in flight when
// its next tick arrives is skipped, never run concurrently, and Stop waits
// for the current cycle to finish.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Quoter    collector.Quoter
	Assets    []config.Asset
	Out       io.Writer
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. Collector may be nil for the price
// snapshot tool, Quoter may be nil for the RSI reporter.
func NewScheduler(ctx context.Context, col *collector.Collector, quoter collector.Quoter, assets []config.Asset, out io.Writer) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Collector: col,
		Quoter:    quoter,
		Assets:    assets,
		Out:       out,
		Ctx:       ctx,
	}
}

// RegisterRSIReport schedules the RSI report cycle under the given cron spec.
func (s *Scheduler) RegisterRSIReport(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.rsiReportTask); err != nil {
		return fmt.Errorf("register rsi report task: %w", err)
	}
	return nil
}

// RegisterSnapshot schedules the price snapshot cycle under the given cron spec.
func (s *Scheduler) RegisterSnapshot(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler after any in-flight cycle completes.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunRSIReportNow executes one RSI report cycle immediately.
func (s *Scheduler) RunRSIReportNow() {
	s.rsiReportTask()
}

// RunSnapshotNow executes one price snapshot cycle immediately.
func (s *Scheduler) RunSnapshotNow() {
	s.snapshotTask()
}

func (s *Scheduler) rsiReportTask() {
	snap := s.Collector.Collect(s.Ctx)
	fmt.Fprintln(s.Out, reporter.FormatRSILine(snap))
}

// snapshotTask prints the latest price for each asset in configured order.
// A failed quote is logged and the asset skipped for this cycle.
func (s *Scheduler) snapshotTask() {
	for _, asset := range s.Assets {
		price, err := s.Quoter.QuoteLatest(s.Ctx, asset)
		if err != nil {
			log.Printf("[WARN] quote %s: %v", asset.Symbol, err)
			continue
		}
		fmt.Fprintln(s.Out, reporter.FormatPrice(price))
	}
}
