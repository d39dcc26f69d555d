package model

import "time"

// AuditStatus classifies an audit entry.
type AuditStatus string

// Audit statuses written to the log tab.
const (
	AuditSuccess AuditStatus = "Success"
	AuditFailed  AuditStatus = "Failed"
	AuditError   AuditStatus = "Error"
)

// AuditEntry is a single row in the audit trail: a timestamped record of
// a login, logout or export attempt including the caller's address.
type AuditEntry struct {
	Timestamp time.Time
	Email     string
	Status    AuditStatus
	Message   string
	IPAddress string
}
