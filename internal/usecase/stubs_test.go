package usecase

import (
	"context"
	"time"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

type fakeImage struct {
	w, h   int
	label  string
	closed bool
}

func (f *fakeImage) Width() int   { return f.w }
func (f *fakeImage) Height() int  { return f.h }
func (f *fakeImage) Close() error { f.closed = true; return nil }

type stubRegionExtractor struct {
	err  error
	seen []domain.ROI
}

func (s *stubRegionExtractor) Extract(img domain.Image, roi domain.ROI) (domain.Image, error) {
	s.seen = append(s.seen, roi)
	if s.err != nil {
		return nil, s.err
	}
	w := int(float64(img.Width()) * (roi.X1 - roi.X0))
	h := int(float64(img.Height()) * (roi.Y1 - roi.Y0))
	return &fakeImage{w: w, h: h, label: "region"}, nil
}

type stubSealMatcher struct {
	score float64
	err   error
}

func (s *stubSealMatcher) Similarity(region, reference domain.Image) (float64, error) {
	return s.score, s.err
}

type stubSignatureMatcher struct {
	score float64
	err   error
}

func (s *stubSignatureMatcher) Similarity(region, reference domain.Image) (float64, error) {
	return s.score, s.err
}

type stubAssetStore struct {
	sealErr      error
	signatureErr error
}

func (s *stubAssetStore) ReferenceSeal(code string) (domain.Image, error) {
	if s.sealErr != nil {
		return nil, s.sealErr
	}
	return &fakeImage{w: 100, h: 100, label: "seal:" + code}, nil
}

func (s *stubAssetStore) ReferenceSignature(code string) (domain.Image, error) {
	if s.signatureErr != nil {
		return nil, s.signatureErr
	}
	return &fakeImage{w: 100, h: 40, label: "signature:" + code}, nil
}

type stubQrDecoder struct {
	payload string
	err     error
}

func (s *stubQrDecoder) Decode(img domain.Image) (string, error) {
	return s.payload, s.err
}

type stubLedger struct {
	records map[string]domain.CertificateRecord
	err     error
}

func (s *stubLedger) GetByCertificateID(ctx context.Context, certID string) (*domain.CertificateRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	rec, ok := s.records[certID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

type stubRecordSource struct {
	records []domain.CertificateRecord
	err     error
}

func (s *stubRecordSource) ListRecords(ctx context.Context) ([]domain.CertificateRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type stubAuditRepo struct {
	events []domain.AuditEvent
	err    error
}

func (s *stubAuditRepo) Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	if s.err != nil {
		return domain.AuditEvent{}, s.err
	}
	event.ID = "evt-" + time.Now().Format("150405.000000000")
	s.events = append(s.events, event)
	return event, nil
}

func (s *stubAuditRepo) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func newTestForgeryEngine(sealScore, signatureScore float64) *ForgeryEngine {
	resolver, _ := NewInstitutionProfileResolver(testDirectory())
	engine, _ := NewForgeryEngine(
		resolver,
		&stubAssetStore{},
		&stubRegionExtractor{},
		&stubSealMatcher{score: sealScore},
		&stubSignatureMatcher{score: signatureScore},
	)
	return engine
}
