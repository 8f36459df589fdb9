package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

type AuditEventRepository struct {
	db *gorm.DB
}

func NewAuditEventRepository(db *gorm.DB) *AuditEventRepository {
	return &AuditEventRepository{db: db}
}

func (r *AuditEventRepository) Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	if r.db == nil {
		return domain.AuditEvent{}, errDBUnavailable
	}
	if event.EventType == "" {
		return domain.AuditEvent{}, errors.New("event_type is required")
	}
	if event.ID == "" {
		event.ID = newUUID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	event.CreatedAt = event.CreatedAt.UTC().Truncate(time.Microsecond)

	model := AuditEventModel{
		ID:            event.ID,
		RequestID:     event.RequestID,
		EventType:     string(event.EventType),
		CertificateNo: event.CertificateNo,
		Payload:       event.Payload,
		PayloadHash:   event.PayloadHash,
		Result:        string(event.Result),
		CreatedAt:     event.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.AuditEvent{}, err
	}
	return event, nil
}

func (r *AuditEventRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	if limit <= 0 {
		limit = 50
	}
	var models []AuditEventModel
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}
	events := make([]domain.AuditEvent, 0, len(models))
	for _, model := range models {
		events = append(events, domain.AuditEvent{
			ID:            model.ID,
			RequestID:     model.RequestID,
			EventType:     domain.AuditEventType(model.EventType),
			CertificateNo: model.CertificateNo,
			Payload:       model.Payload,
			PayloadHash:   model.PayloadHash,
			Result:        domain.AuditResult(model.Result),
			CreatedAt:     model.CreatedAt,
		})
	}
	return events, nil
}
