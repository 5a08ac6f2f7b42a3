package service

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
)

func newKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func newRecord() *auditDomain.AuditRecord {
	principalID := uuid.Must(uuid.NewV7())
	return &auditDomain.AuditRecord{
		ID:            uuid.Must(uuid.NewV7()),
		EventTime:     time.Now().UTC(),
		Actor:         "alice",
		PrincipalID:   &principalID,
		Action:        "LOGIN",
		Outcome:       auditDomain.OutcomeSuccess,
		ClientAddress: "10.0.0.1",
		Path:          "/v1/auth/login",
		Method:        "POST",
	}
}

func TestAuditSigner_SignAndVerify(t *testing.T) {
	signer := NewAuditSigner()
	key := newKey(t)
	record := newRecord()

	signature, err := signer.Sign(key, record)
	require.NoError(t, err)
	assert.Len(t, signature, 32)

	record.Signature = signature
	assert.NoError(t, signer.Verify(key, record))
}

func TestAuditSigner_VerifyDetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(r *auditDomain.AuditRecord)
	}{
		{"Actor", func(r *auditDomain.AuditRecord) { r.Actor = "mallory" }},
		{"Outcome", func(r *auditDomain.AuditRecord) { r.Outcome = auditDomain.OutcomeFailed }},
		{"Action", func(r *auditDomain.AuditRecord) { r.Action = "USER_DELETE" }},
		{"EventTime", func(r *auditDomain.AuditRecord) { r.EventTime = r.EventTime.Add(time.Second) }},
		{"Message", func(r *auditDomain.AuditRecord) { r.Message = "bad credentials" }},
		{"ClientAddress", func(r *auditDomain.AuditRecord) { r.ClientAddress = "127.0.0.1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer := NewAuditSigner()
			key := newKey(t)
			record := newRecord()

			signature, err := signer.Sign(key, record)
			require.NoError(t, err)
			record.Signature = signature

			tt.tamper(record)

			assert.ErrorIs(t, signer.Verify(key, record), auditDomain.ErrSignatureInvalid)
		})
	}
}

func TestAuditSigner_PrincipalLinkNotSigned(t *testing.T) {
	signer := NewAuditSigner()
	key := newKey(t)
	record := newRecord()

	signature, err := signer.Sign(key, record)
	require.NoError(t, err)
	record.Signature = signature

	record.PrincipalID = nil
	assert.NoError(t, signer.Verify(key, record))
}

func TestAuditSigner_FieldBoundariesAreUnambiguous(t *testing.T) {
	signer := NewAuditSigner()
	key := newKey(t)

	a := newRecord()
	a.Path, a.Method = "/v1/aPOST", ""
	b := *a
	b.Path, b.Method = "/v1/a", "POST"

	sigA, err := signer.Sign(key, a)
	require.NoError(t, err)
	sigB, err := signer.Sign(key, &b)
	require.NoError(t, err)

	assert.NotEqual(t, sigA, sigB)
}

func TestAuditSigner_Deterministic(t *testing.T) {
	signer := NewAuditSigner()
	key := newKey(t)
	record := newRecord()

	sig1, _ := signer.Sign(key, record)
	sig2, _ := signer.Sign(key, record)

	assert.Equal(t, sig1, sig2)
}

func TestAuditSigner_VerifyWithWrongKey(t *testing.T) {
	signer := NewAuditSigner()
	record := newRecord()

	signature, err := signer.Sign(newKey(t), record)
	require.NoError(t, err)
	record.Signature = signature

	assert.ErrorIs(t, signer.Verify(newKey(t), record), auditDomain.ErrSignatureInvalid)
}

func TestAuditSigner_VerifyAfterStorageRoundTrip(t *testing.T) {
	signer := NewAuditSigner()
	key := newKey(t)
	record := newRecord()
	record.EventTime = auditDomain.Now()

	signature, err := signer.Sign(key, record)
	require.NoError(t, err)
	record.Signature = signature

	// What comes back from a TIMESTAMP(6) column, read in another zone.
	record.EventTime = record.EventTime.Round(time.Microsecond).In(time.FixedZone("UTC-3", -3*60*60))

	assert.NoError(t, signer.Verify(key, record))
}

func TestAuditSigner_SubMicrosecondIsNotSigned(t *testing.T) {
	signer := NewAuditSigner()
	key := newKey(t)
	record := newRecord()
	record.EventTime = time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)

	signature, err := signer.Sign(key, record)
	require.NoError(t, err)
	record.Signature = signature

	record.EventTime = record.EventTime.Truncate(time.Microsecond)
	assert.NoError(t, signer.Verify(key, record))
}
