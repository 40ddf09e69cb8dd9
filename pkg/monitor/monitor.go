// Package monitor implements the polling loop that watches an index's
// record count and reports changes.
package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/EcomDev/algolia-monitor/pkg/algolia"
	"github.com/EcomDev/algolia-monitor/pkg/report"
)

// Indexer is the capability the loop needs from the remote service: the
// current record count and the recent build logs for one index.
type Indexer interface {
	TotalRecords(ctx context.Context) (int64, error)
	RecentLogs(ctx context.Context) ([]algolia.LogEntry, error)
}

// Sink receives each change report after it is printed, e.g. a webhook.
type Sink interface {
	Deliver(ctx context.Context, rep *report.ChangeReport) error
}

// Monitor polls one index and reports record count changes.
type Monitor struct {
	cfg       Config
	index     Indexer
	formatter report.Formatter
	out       io.Writer
	logger    *zap.SugaredLogger
	sink      Sink

	// snapshot is the count observed at the most recent successful poll.
	// Failed polls never touch it.
	snapshot int64

	// lastLogTimestamp is the high-water mark so each log entry is
	// printed at most once across cycles.
	lastLogTimestamp string
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithFormatter sets the report formatter (text by default).
func WithFormatter(f report.Formatter) Option {
	return func(m *Monitor) { m.formatter = f }
}

// WithOutput sets the writer reports are printed to (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(m *Monitor) { m.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(m *Monitor) { m.logger = logger }
}

// WithSink adds a delivery target for change reports.
func WithSink(s Sink) Option {
	return func(m *Monitor) { m.sink = s }
}

// New creates a Monitor for the given index.
func New(cfg Config, index Indexer, opts ...Option) *Monitor {
	m := &Monitor{
		cfg:       cfg,
		index:     index,
		formatter: report.NewTextFormatter(),
		out:       os.Stdout,
		logger:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run polls until ctx is cancelled. A cancelled context is a graceful
// shutdown and returns nil; fatal remote errors (bad credentials, unknown
// index) are returned. Transient failures are logged and the loop keeps
// going at the next scheduled interval.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.establishBaseline(ctx); err != nil {
		return err
	}

	m.logger.Infof("monitoring index %q for record count changes, baseline %d",
		m.cfg.IndexName, m.snapshot)

	timer := time.NewTimer(m.cfg.Delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		if err := m.poll(ctx); err != nil {
			if algolia.Fatal(err) {
				return err
			}
			if ctx.Err() != nil {
				return nil
			}
			m.logger.Warnf("poll failed, keeping snapshot at %d: %v", m.snapshot, err)
		}

		timer.Reset(m.cfg.Delay)
	}
}

// establishBaseline seeds the snapshot either from configuration or, when
// no expected count was given, from an immediate fetch. A failed first
// fetch is fatal: there is no state to fall back on and the usual cause is
// a setup mistake.
func (m *Monitor) establishBaseline(ctx context.Context) error {
	if m.cfg.ExpectedRecords > 0 {
		m.snapshot = m.cfg.ExpectedRecords
		return nil
	}
	count, err := m.index.TotalRecords(ctx)
	if err != nil {
		return fmt.Errorf("establishing baseline: %w", err)
	}
	m.snapshot = count
	return nil
}

// poll runs one cycle: fetch the count, compare against the snapshot, and
// report when the change is large enough. The snapshot advances on every
// successful fetch so small drift never accumulates into a late report.
func (m *Monitor) poll(ctx context.Context) error {
	if m.cfg.AllLogs {
		return m.printNewLogs(ctx)
	}

	count, err := m.index.TotalRecords(ctx)
	if err != nil {
		return err
	}

	diff := count - m.snapshot
	if diff != 0 && abs(diff) >= m.cfg.Delta {
		if err := m.report(ctx, count); err != nil {
			return err
		}
	}
	m.snapshot = count
	return nil
}

// report fetches recent logs and prints one change report. Transient log
// fetch failures degrade to a summary-only report; the high-water mark
// stays put so the missed entries surface on the next report.
func (m *Monitor) report(ctx context.Context, count int64) error {
	rep := &report.ChangeReport{
		Index:      m.cfg.IndexName,
		OldCount:   m.snapshot,
		NewCount:   count,
		Delta:      count - m.snapshot,
		ObservedAt: time.Now().UTC(),
	}

	entries, err := m.index.RecentLogs(ctx)
	if err != nil {
		if algolia.Fatal(err) {
			return err
		}
		m.logger.Warnf("fetching logs for index %q: %v", m.cfg.IndexName, err)
	}

	newest := m.lastLogTimestamp
	for _, entry := range entries {
		if !entry.IsNewer(m.lastLogTimestamp) {
			continue
		}
		rep.Entries = append(rep.Entries, report.Entry{
			Timestamp: entry.Timestamp,
			Operation: string(entry.Operation()),
			ObjectIDs: entry.ObjectIDs(),
		})
		if entry.Timestamp > newest {
			newest = entry.Timestamp
		}
	}

	if err := m.formatter.Format(rep, m.out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	m.lastLogTimestamp = newest

	if m.sink != nil {
		if err := m.sink.Deliver(ctx, rep); err != nil {
			m.logger.Warnf("delivering report: %v", err)
		}
	}
	return nil
}

// printNewLogs implements all-logs mode: every unseen build log entry is
// printed each cycle, no count comparison.
func (m *Monitor) printNewLogs(ctx context.Context) error {
	entries, err := m.index.RecentLogs(ctx)
	if err != nil {
		return err
	}

	newest := m.lastLogTimestamp
	var fresh []report.Entry
	for _, entry := range entries {
		if !entry.IsNewer(m.lastLogTimestamp) {
			continue
		}
		fresh = append(fresh, report.Entry{
			Timestamp: entry.Timestamp,
			Operation: string(entry.Operation()),
			ObjectIDs: entry.ObjectIDs(),
		})
		if entry.Timestamp > newest {
			newest = entry.Timestamp
		}
	}

	if len(fresh) == 0 {
		return nil
	}
	if err := m.formatter.FormatEntries(fresh, m.out); err != nil {
		return fmt.Errorf("writing log entries: %w", err)
	}
	m.lastLogTimestamp = newest
	return nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
