package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// CertificateRepository serves both read paths of the reference
// dataset: the full-scan snapshot for fuzzy matching and the keyed
// lookup for QR ledger verification.
type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) ListRecords(ctx context.Context) ([]domain.CertificateRecord, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []CertificateModel
	if err := r.db.WithContext(ctx).Order("certificate_number asc").Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]domain.CertificateRecord, 0, len(models))
	for _, model := range models {
		records = append(records, recordFromModel(model))
	}
	return records, nil
}

func (r *CertificateRepository) GetByCertificateID(ctx context.Context, certID string) (*domain.CertificateRecord, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model CertificateModel
	err := r.db.WithContext(ctx).First(&model, "certificate_number = ?", certID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	record := recordFromModel(model)
	return &record, nil
}

func (r *CertificateRepository) Create(ctx context.Context, record domain.CertificateRecord) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := modelFromRecord(record)
	if model.ID == "" {
		model.ID = newUUID()
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func recordFromModel(model CertificateModel) domain.CertificateRecord {
	createdAt := model.CreatedAt
	return domain.CertificateRecord{
		CertificateNumber: model.CertificateNumber,
		Name:              model.Name,
		Institution:       model.Institution,
		Course:            model.Course,
		Year:              model.Year,
		DigitalHash:       model.DigitalHash,
		CreatedAt:         &createdAt,
	}
}

func modelFromRecord(record domain.CertificateRecord) CertificateModel {
	model := CertificateModel{
		CertificateNumber: record.CertificateNumber,
		Name:              record.Name,
		Institution:       record.Institution,
		Course:            record.Course,
		Year:              record.Year,
		DigitalHash:       record.DigitalHash,
	}
	if record.CreatedAt != nil {
		model.CreatedAt = *record.CreatedAt
	}
	return model
}
