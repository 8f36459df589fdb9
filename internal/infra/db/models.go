package db

import "time"

// CertificateModel is the reference dataset row. The digital hash is
// the ledger value compared against QR payloads.
type CertificateModel struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	CertificateNumber string    `gorm:"uniqueIndex;not null"`
	Name              string    `gorm:"not null"`
	Institution       string    `gorm:"index;not null"`
	Course            string
	Year              int       `gorm:"index;not null"`
	DigitalHash       string    `gorm:"index"`
	CreatedAt         time.Time `gorm:"not null"`
}

func (CertificateModel) TableName() string { return "certificates" }

type AuditEventModel struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	RequestID     string    `gorm:"index"`
	EventType     string    `gorm:"index;not null"`
	CertificateNo string    `gorm:"index"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	PayloadHash   string    `gorm:"not null"`
	Result        string    `gorm:"not null"`
	CreatedAt     time.Time `gorm:"index;not null"`
}

func (AuditEventModel) TableName() string { return "audit_events" }
