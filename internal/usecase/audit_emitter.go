package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// AuditEmitter appends verification outcomes to the audit trail. The
// payload is stored as canonical JSON together with its SHA-256 digest
// so stored verdicts are tamper-evident.
type AuditEmitter struct {
	Repo AuditEventRepository
	now  func() time.Time
}

func NewAuditEmitter(repo AuditEventRepository) (*AuditEmitter, error) {
	if repo == nil {
		return nil, errors.New("audit repository required")
	}
	return &AuditEmitter{Repo: repo, now: time.Now}, nil
}

func (a *AuditEmitter) Emit(ctx context.Context, eventType domain.AuditEventType, requestID, certNo string, payload any, result domain.AuditResult) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := domain.AuditEvent{
		RequestID:     requestID,
		EventType:     eventType,
		CertificateNo: certNo,
		Payload:       body,
		PayloadHash:   sha256Hex(body),
		Result:        result,
		CreatedAt:     a.now().UTC(),
	}
	_, err = a.Repo.Append(ctx, event)
	return err
}

// VerifyPayloadHashes re-hashes recent audit payloads and reports the
// first tampered row, if any.
func VerifyPayloadHashes(ctx context.Context, repo AuditEventRepository, limit int) error {
	if repo == nil {
		return errors.New("audit repository required")
	}
	events, err := repo.ListRecent(ctx, limit)
	if err != nil {
		return err
	}
	for _, event := range events {
		if sha256Hex(event.Payload) != event.PayloadHash {
			return errors.New("audit payload hash mismatch for event " + event.ID)
		}
	}
	return nil
}

func sha256Hex(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}
