// Package audit fans login and activity records out to the configured
// sinks. Recording is best effort: a sink failure is logged once and
// never surfaces to the request path.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/utsavgifts/catalogd/internal/model"
	"github.com/utsavgifts/catalogd/internal/service"
)

// recordTimeout bounds each sink write so a slow spreadsheet append
// cannot hold a request goroutine.
const recordTimeout = 10 * time.Second

// appender is the slice of the sheets client the sink needs.
type appender interface {
	AppendAuditRow(ctx context.Context, entry model.AuditEntry) error
}

// SheetsSink appends audit entries to the spreadsheet log tab.
type SheetsSink struct {
	client appender
	logger *slog.Logger
	warned sync.Once
}

// NewSheetsSink creates a sink backed by the spreadsheet log tab.
func NewSheetsSink(client appender, logger *slog.Logger) *SheetsSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetsSink{client: client, logger: logger}
}

// Record appends the entry asynchronously. Failures are logged at warn
// level once and then at debug, so a revoked credential does not flood
// the logs.
func (s *SheetsSink) Record(_ context.Context, entry model.AuditEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := s.client.AppendAuditRow(ctx, entry); err != nil {
			logged := false
			s.warned.Do(func() {
				s.logger.Warn("audit append failed, further failures logged at debug",
					"error", err)
				logged = true
			})
			if !logged {
				s.logger.Debug("audit append failed", "error", err)
			}
		}
	}()
}

// StoreSink records audit entries in the login history store.
type StoreSink struct {
	store  service.HistoryStore
	logger *slog.Logger
}

// NewStoreSink creates a sink backed by the local history store.
func NewStoreSink(store service.HistoryStore, logger *slog.Logger) *StoreSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreSink{store: store, logger: logger}
}

// Record writes the entry synchronously; SQLite writes are local and fast.
func (s *StoreSink) Record(ctx context.Context, entry model.AuditEntry) {
	if err := s.store.SaveLogin(ctx, entry); err != nil {
		s.logger.Warn("failed to save login history", "error", err)
	}
}

// MultiSink records to every sink in order.
type MultiSink []service.AuditSink

// Record forwards the entry to each sink.
func (m MultiSink) Record(ctx context.Context, entry model.AuditEntry) {
	for _, sink := range m {
		sink.Record(ctx, entry)
	}
}

// NopSink discards all entries.
type NopSink struct{}

// Record does nothing.
func (NopSink) Record(context.Context, model.AuditEntry) {}
