package db

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// SampleRecords is the demo reference dataset. Seeding is idempotent:
// existing certificate numbers are left untouched.
func SampleRecords() []domain.CertificateRecord {
	return []domain.CertificateRecord{
		{
			CertificateNumber: "JH-UNI-2018-201",
			Name:              "Akash Rana",
			Institution:       "Jharkhand State University",
			Course:            "BBA",
			Year:              2018,
			DigitalHash:       "abc123hash456def",
		},
		{
			CertificateNumber: "RTI-2019-305",
			Name:              "Priya Sharma",
			Institution:       "Ranchi Tech Institute",
			Course:            "M.Sc Physics",
			Year:              2019,
			DigitalHash:       "xyz789hash123abc",
		},
		{
			CertificateNumber: "JBS-2020-101",
			Name:              "Amit Verma",
			Institution:       "Jharkhand Business School",
			Course:            "BBA",
			Year:              2020,
			DigitalHash:       "def456hash789abc",
		},
	}
}

func (s *Store) SeedSampleRecords(ctx context.Context) error {
	if s.DB == nil {
		return errDBUnavailable
	}
	for _, record := range SampleRecords() {
		model := modelFromRecord(record)
		model.ID = newUUID()
		err := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "certificate_number"}},
				DoNothing: true,
			}).
			Create(&model).Error
		if err != nil {
			return fmt.Errorf("seed %s: %w", record.CertificateNumber, err)
		}
	}
	return nil
}
