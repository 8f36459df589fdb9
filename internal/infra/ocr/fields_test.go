package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

func testDirectory() *domain.InstitutionDirectory {
	return domain.NewInstitutionDirectory(
		[]domain.InstitutionProfile{
			{Code: "JHAR", Name: "Jharkhand State University"},
			{Code: "RANC", Name: "Ranchi Tech Institute"},
			{Code: "JHAR_BS", Name: "Jharkhand Business School"},
		},
		map[string]string{
			"jsu": "Jharkhand State University",
			"rti": "Ranchi Tech Institute",
		},
	)
}

func TestParseFields_FullCertificate(t *testing.T) {
	text := "JHARKHAND STATE UNIVERSITY\n" +
		"Certificate No: JH-UNI-2018-201\n" +
		"THIS CERTIFICATE IS GIVEN TO\n" +
		"Akash Rana\n" +
		"For completing BBA in the year 2018\n"

	fields := ParseFields(text, testDirectory())

	if fields.CertificateNumber != "JH-UNI-2018-201" {
		t.Fatalf("certificate number %q", fields.CertificateNumber)
	}
	if fields.Name != "Akash Rana" {
		t.Fatalf("name %q", fields.Name)
	}
	if fields.Course != "BBA" {
		t.Fatalf("course %q", fields.Course)
	}
	if fields.Year != "2018" {
		t.Fatalf("year %q", fields.Year)
	}
	if fields.RawText != text {
		t.Fatalf("raw text must be preserved")
	}
}

func TestParseFields_InstitutionScan(t *testing.T) {
	text := "awarded to Priya Sharma\n2019 batch, Ranchi Tech Institute"
	fields := ParseFields(text, testDirectory())
	if fields.Institution != "Ranchi Tech Institute" {
		t.Fatalf("institution %q", fields.Institution)
	}
	if fields.Name != "Priya Sharma" {
		t.Fatalf("name %q", fields.Name)
	}
	if fields.Year != "2019" {
		t.Fatalf("year %q", fields.Year)
	}
}

func TestParseFields_CertificateNumberFromShape(t *testing.T) {
	// No explicit label; the identifier shape is spotted mid-text and
	// separators collapse to dashes.
	text := "serial JH UNI 2018 201 issued"
	fields := ParseFields(text, nil)
	if fields.CertificateNumber != "JH-UNI-2018-201" {
		t.Fatalf("certificate number %q", fields.CertificateNumber)
	}
}

func TestParseFields_LabelWinsOverShape(t *testing.T) {
	text := "ref JH-UNI-2017-999\nCertificate No: RTI-2019-305"
	fields := ParseFields(text, nil)
	if fields.CertificateNumber != "RTI-2019-305" {
		t.Fatalf("certificate number %q", fields.CertificateNumber)
	}
}

func TestParseFields_YearIgnoresCertificateNumberDigits(t *testing.T) {
	// The only 19xx/20xx token outside the certificate number is the
	// real graduation year.
	text := "Certificate No: RTI-2019-305\nclass of 2020"
	fields := ParseFields(text, nil)
	if fields.Year != "2020" {
		t.Fatalf("year %q", fields.Year)
	}
}

func TestParseFields_MissingFieldsStayEmpty(t *testing.T) {
	fields := ParseFields("illegible scan", testDirectory())
	if fields.CertificateNumber != "" || fields.Name != "" || fields.Institution != "" || fields.Year != "" {
		t.Fatalf("expected empty bag, got %+v", fields)
	}
}

func TestCleanName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Akash Rana", "Akash Rana"},
		{"Amit Verma PRESENTED ON", "Amit Verma"},
		{"Priya Sharma For completing BBA", "Priya Sharma"},
		{"Akash  Rana123", "Akash Rana"},
	}
	for _, tc := range cases {
		if got := cleanName(tc.in); got != tc.want {
			t.Fatalf("cleanName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type staticRecognizer struct {
	text string
	err  error
}

func (s *staticRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	return s.text, s.err
}

func TestFieldExtractor(t *testing.T) {
	extractor, err := NewFieldExtractor(&staticRecognizer{text: "Certificate No: JBS-2020-101\nJharkhand Business School\nawarded to Amit Verma\n2020"}, testDirectory())
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	fields, err := extractor.Extract(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if fields.CertificateNumber != "JBS-2020-101" {
		t.Fatalf("certificate number %q", fields.CertificateNumber)
	}
	if fields.Institution != "Jharkhand Business School" {
		t.Fatalf("institution %q", fields.Institution)
	}
	if fields.Name != "Amit Verma" {
		t.Fatalf("name %q", fields.Name)
	}
}

func TestFieldExtractor_RecognizerFailure(t *testing.T) {
	wantErr := errors.New("tesseract unavailable")
	extractor, err := NewFieldExtractor(&staticRecognizer{err: wantErr}, testDirectory())
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	if _, err := extractor.Extract(context.Background(), []byte("png")); !errors.Is(err, wantErr) {
		t.Fatalf("expected recognizer error, got %v", err)
	}
}
