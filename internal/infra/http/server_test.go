package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/config"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/usecase"
)

type fakeImage struct{ w, h int }

func (f *fakeImage) Width() int   { return f.w }
func (f *fakeImage) Height() int  { return f.h }
func (f *fakeImage) Close() error { return nil }

type stubRegions struct{}

func (stubRegions) Extract(img domain.Image, roi domain.ROI) (domain.Image, error) {
	return &fakeImage{w: 100, h: 100}, nil
}

type stubScorer struct{ score float64 }

func (s stubScorer) Similarity(region, reference domain.Image) (float64, error) {
	return s.score, nil
}

type stubAssets struct{}

func (stubAssets) ReferenceSeal(code string) (domain.Image, error) {
	return &fakeImage{w: 64, h: 64}, nil
}

func (stubAssets) ReferenceSignature(code string) (domain.Image, error) {
	return &fakeImage{w: 64, h: 32}, nil
}

type stubRecords struct{ records []domain.CertificateRecord }

func (s stubRecords) ListRecords(ctx context.Context) ([]domain.CertificateRecord, error) {
	return s.records, nil
}

type stubFields struct {
	fields domain.ExtractedFields
	err    error
}

func (s stubFields) Extract(ctx context.Context, image []byte) (domain.ExtractedFields, error) {
	return s.fields, s.err
}

type memoryCache struct {
	entries map[string]domain.CachedVerdict
}

func (m *memoryCache) Get(ctx context.Context, key string) (*domain.CachedVerdict, bool, error) {
	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &entry, true, nil
}

func (m *memoryCache) Put(ctx context.Context, key string, entry domain.CachedVerdict, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = map[string]domain.CachedVerdict{}
	}
	m.entries[key] = entry
	return nil
}

func testRecords() []domain.CertificateRecord {
	return []domain.CertificateRecord{
		{CertificateNumber: "JH-UNI-2018-201", Name: "Akash Rana", Institution: "Jharkhand State University", Course: "BBA", Year: 2018},
	}
}

func testServer(t *testing.T, fields domain.ExtractedFields, cache usecase.VerificationCache) *Server {
	t.Helper()
	directory := domain.NewInstitutionDirectory(
		[]domain.InstitutionProfile{{
			Code:               "JHAR",
			Name:               "Jharkhand State University",
			SealROI:            domain.ROI{X0: 0.05, Y0: 0.75, X1: 0.30, Y1: 0.95},
			SignatureROI:       domain.ROI{X0: 0.55, Y0: 0.78, X1: 0.95, Y1: 0.92},
			SealThreshold:      0.25,
			SignatureThreshold: 0.3,
		}},
		map[string]string{"jsu": "Jharkhand State University"},
	)
	resolver, err := usecase.NewInstitutionProfileResolver(directory)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	forgery, err := usecase.NewForgeryEngine(resolver, stubAssets{}, stubRegions{}, stubScorer{score: 0.6}, stubScorer{score: 0.5})
	if err != nil {
		t.Fatalf("forgery engine: %v", err)
	}
	verify, err := usecase.NewVerifyCertificate(stubRecords{records: testRecords()}, usecase.NewFuzzyRecordMatcher(usecase.DefaultMatcherConfig()), forgery, nil, nil)
	if err != nil {
		t.Fatalf("verify usecase: %v", err)
	}

	return NewServerWithDeps(config.Config{HTTPAddr: ":0"}, nil, ServerDeps{
		Verify: verify,
		Fields: stubFields{fields: fields},
		Cache:  cache,
		Decode: func(data []byte) (domain.Image, error) {
			return &fakeImage{w: 1000, h: 1400}, nil
		},
	})
}

func multipartUpload(t *testing.T, url string, contents []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "certificate.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(contents); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()
	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleHealth(t *testing.T) {
	server := testServer(t, domain.ExtractedFields{}, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["mode"] != "no-db" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestHandleVerifyCertificate_Valid(t *testing.T) {
	server := testServer(t, domain.ExtractedFields{
		CertificateNumber: "JH-UNI-2018-201",
		Name:              "Akash Rana",
		Institution:       "Jharkhand State University",
		Year:              "2018",
	}, nil)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, multipartUpload(t, "/api/verify-certificate", []byte("fake png bytes")))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}

	var body verifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || !body.Validation.IsValid || body.Validation.Status != "VERIFIED" {
		t.Fatalf("unexpected verdict %+v", body.Validation)
	}
	if !body.OcrValidation.IsValid || body.OcrValidation.Scores == nil || body.OcrValidation.Scores.Overall != 100 {
		t.Fatalf("unexpected ocr validation %+v", body.OcrValidation)
	}
	if !body.Forgery.OverallAuthentic {
		t.Fatalf("unexpected forgery verdict %+v", body.Forgery)
	}
	if body.Cached {
		t.Fatalf("first request must not be served from cache")
	}
}

func TestHandleVerifyCertificate_UnknownInstitution(t *testing.T) {
	server := testServer(t, domain.ExtractedFields{
		CertificateNumber: "JH-UNI-2018-201",
		Institution:       "Nowhere Institute",
	}, nil)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, multipartUpload(t, "/api/verify-certificate", []byte("fake png bytes")))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "UNKNOWN_INSTITUTION" {
		t.Fatalf("unexpected code %q", body.Code)
	}
}

func TestHandleVerifyCertificate_MissingFile(t *testing.T) {
	server := testServer(t, domain.ExtractedFields{}, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/verify-certificate", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestHandleVerifyCertificate_CacheHit(t *testing.T) {
	cache := &memoryCache{}
	server := testServer(t, domain.ExtractedFields{
		CertificateNumber: "JH-UNI-2018-201",
		Name:              "Akash Rana",
		Institution:       "Jharkhand State University",
		Year:              "2018",
	}, cache)

	contents := []byte("identical upload")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, multipartUpload(t, "/api/verify-certificate", contents))
	if rec.Code != http.StatusOK {
		t.Fatalf("first status %d", rec.Code)
	}
	if len(cache.entries) != 1 {
		t.Fatalf("expected one cached verdict, got %d", len(cache.entries))
	}

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, multipartUpload(t, "/api/verify-certificate", contents))
	var body verifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Cached || !body.Validation.IsValid {
		t.Fatalf("expected cached valid verdict, got %+v", body)
	}
	// The cached response carries the same extracted fields as the
	// fresh one, not an empty placeholder.
	if body.ExtractedInfo.CertificateNumber != "JH-UNI-2018-201" {
		t.Fatalf("cached response lost extracted fields: %+v", body.ExtractedInfo)
	}
}

func TestHandleScanQr_NotConfigured(t *testing.T) {
	server := testServer(t, domain.ExtractedFields{}, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, multipartUpload(t, "/api/scan-qr", []byte("fake png bytes")))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rec.Code)
	}
}
