// Package domain defines the audit trail model: one immutable record per audited invocation,
// naming who acted, what they attempted and how it ended.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the result of an audited invocation.
type Outcome string

const (
	// OutcomeSuccess marks an invocation that returned normally.
	OutcomeSuccess Outcome = "SUCCESS"

	// OutcomeFailed marks an invocation that returned an error or panicked.
	OutcomeFailed Outcome = "FAILED"
)

// AnonymousActor is recorded when no identity could be resolved for an invocation.
const AnonymousActor = "anonymousUser"

// UsernameCarrier is implemented by request payloads that name the principal they act for.
// The audit trail uses it to identify the actor of calls made before authentication, such as login.
type UsernameCarrier interface {
	GetUsername() string
}

// TimestampPrecision is the finest resolution PostgreSQL TIMESTAMPTZ and MySQL DATETIME(6)
// store. Record timestamps are truncated to it so a signed record reads back unchanged.
const TimestampPrecision = time.Microsecond

// Now returns the current UTC time at TimestampPrecision.
func Now() time.Time {
	return time.Now().UTC().Truncate(TimestampPrecision)
}

// AuditRecord captures one audited invocation. Records are never updated after creation.
type AuditRecord struct {
	ID            uuid.UUID
	EventTime     time.Time  // Captured before the invocation started
	Actor         string     // Resolved actor name or AnonymousActor
	PrincipalID   *uuid.UUID // Set only when Actor names a live principal
	Action        string     // Static action code of the audited operation (e.g. LOGIN)
	Outcome       Outcome
	ClientAddress string
	Path          string
	Method        string
	Message       string // Failure message, empty on success
	Signature     []byte // HMAC-SHA256 over the canonical record, nil when unsigned
	IsSigned      bool
	CreatedAt     time.Time
}
