// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/utsavgifts/catalogd/internal/model"
)

// ProductSource fetches the full product list from the tabular source.
// Implementations return the records in sheet order; callers derive
// filtered views without mutating the returned slice.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]model.Product, error)
}

// CredentialStore checks a user's email and password against the
// credential tab and reports the resulting session identity.
type CredentialStore interface {
	CheckCredentials(ctx context.Context, email, password string) (*model.Session, error)
}

// AuditSink records audit entries. Implementations must never block the
// caller and must swallow their own failures after logging them once.
type AuditSink interface {
	Record(ctx context.Context, entry model.AuditEntry)
}

// HistoryStore persists login history for the admin view.
type HistoryStore interface {
	SaveLogin(ctx context.Context, entry model.AuditEntry) error
	RecentLogins(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

// ExportRequest carries everything a PDF strategy needs to produce a
// catalog document.
type ExportRequest struct {
	Products   []model.Product
	ClientName string
	Criteria   model.Criteria
	Discount   int
}

// Generator produces a complete catalog PDF. Two strategies exist: the
// vector composer and the headless-browser capture; both are validated
// against the same output invariants.
type Generator interface {
	Generate(ctx context.Context, req ExportRequest) ([]byte, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
