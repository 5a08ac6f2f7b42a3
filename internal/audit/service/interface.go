// Package service provides tamper-evidence for audit records.
package service

import auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"

// AuditSigner computes and checks HMAC signatures over audit records.
type AuditSigner interface {
	// Sign returns the HMAC-SHA256 of the canonical record under a key derived from key.
	Sign(key []byte, record *auditDomain.AuditRecord) ([]byte, error)

	// Verify returns ErrSignatureInvalid when record.Signature does not match its content.
	Verify(key []byte, record *auditDomain.AuditRecord) error
}
