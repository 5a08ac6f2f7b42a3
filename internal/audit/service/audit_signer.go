package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
)

const signingKeyInfo = "audit-record-signing-v1"

type auditSigner struct{}

// NewAuditSigner creates an AuditSigner using HKDF-SHA256 for key derivation and
// HMAC-SHA256 for the signature.
func NewAuditSigner() AuditSigner {
	return &auditSigner{}
}

func (a *auditSigner) deriveSigningKey(key []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, key, nil, []byte(signingKeyInfo))

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, err
	}
	return signingKey, nil
}

// canonicalize serializes the signed fields in a fixed order:
// id || event_time || actor || action || outcome || client_address || path || method || message
// Strings are length-prefixed. event_time is taken in microseconds, the precision the
// databases keep. principal_id is not signed: purging a principal clears it.
func (a *auditSigner) canonicalize(record *auditDomain.AuditRecord) []byte {
	buf := make([]byte, 0, 512)

	buf = append(buf, record.ID[:]...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(record.EventTime.UnixMicro()))
	buf = appendLengthPrefixed(buf, record.Actor)

	buf = appendLengthPrefixed(buf, record.Action)
	buf = appendLengthPrefixed(buf, string(record.Outcome))
	buf = appendLengthPrefixed(buf, record.ClientAddress)
	buf = appendLengthPrefixed(buf, record.Path)
	buf = appendLengthPrefixed(buf, record.Method)
	buf = appendLengthPrefixed(buf, record.Message)

	return buf
}

func appendLengthPrefixed(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// Sign generates the 32-byte HMAC-SHA256 signature for the record.
func (a *auditSigner) Sign(key []byte, record *auditDomain.AuditRecord) ([]byte, error) {
	signingKey, err := a.deriveSigningKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer zero(signingKey)

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(a.canonicalize(record))
	return mac.Sum(nil), nil
}

// Verify recomputes the signature and compares it in constant time.
func (a *auditSigner) Verify(key []byte, record *auditDomain.AuditRecord) error {
	expected, err := a.Sign(key, record)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(record.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
