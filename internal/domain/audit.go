package domain

import "time"

type AuditEventType string

const (
	AuditEventVerification AuditEventType = "certificate.verified"
	AuditEventQrScan       AuditEventType = "qr.scanned"
)

type AuditResult string

const (
	AuditResultSuccess AuditResult = "success"
	AuditResultFailure AuditResult = "failure"
)

// AuditEvent is one append-only row of the verification audit trail.
// Payload carries the canonical JSON of the verdict; PayloadHash is its
// SHA-256 hex digest so stored verdicts are tamper-evident.
type AuditEvent struct {
	ID            string
	RequestID     string
	EventType     AuditEventType
	CertificateNo string
	Payload       []byte
	PayloadHash   string
	Result        AuditResult
	CreatedAt     time.Time
}
