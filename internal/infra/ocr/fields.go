package ocr

import (
	"regexp"
	"strings"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

var (
	certLabelPattern = regexp.MustCompile(`(?i)Cert(?:ificate)?\s*No[:\-\s]*([A-Z0-9\-]+)`)
	certShapePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(JH[-_ ]?UNI[-_ ]?\d{4}[-_ ]?\d+)`),
		regexp.MustCompile(`(?i)\b([A-Z]{2,4}[-_ ]?\d{4}[-_ ]?\d{2,4})\b`),
	}
	certSeparators = regexp.MustCompile(`[\s\-_]+`)

	awardedToPattern = regexp.MustCompile(`(?i)(?:awarded to|is given to|this certificate is given to)\s*\n?([A-Za-z\s]+)`)
	coursePattern    = regexp.MustCompile(`(?i)(BBA|M\.?Sc\s+[A-Za-z]+|BA\s+[A-Za-z]+)`)
	nameNoisePattern = regexp.MustCompile(`(?i)\b(PRESENTED.*|For completing.*|In the year.*)$`)
	nonAlphaPattern  = regexp.MustCompile(`[^A-Za-z\s]`)

	yearPattern       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ParseFields extracts the structured certificate fields from raw OCR
// text. Missing fields stay empty; the fuzzy matcher downstream decides
// what an incomplete bag is worth.
func ParseFields(text string, directory *domain.InstitutionDirectory) domain.ExtractedFields {
	fields := domain.ExtractedFields{RawText: text}

	certNo, rawCertNo := extractCertificateNumber(text)
	fields.CertificateNumber = certNo
	fields.Institution = extractInstitution(text, directory)
	fields.Name, fields.Course = extractNameAndCourse(text)
	fields.Year = extractYear(text, rawCertNo)
	return fields
}

// extractCertificateNumber prefers an explicit "Certificate No:" label
// and falls back to known identifier shapes found anywhere in the text.
// It returns both the normalized number and the raw capture, the latter
// so year extraction can mask the exact text it came from.
func extractCertificateNumber(text string) (string, string) {
	if m := certLabelPattern.FindStringSubmatch(text); m != nil {
		return normalizeCertNo(m[1]), m[1]
	}
	for _, pattern := range certShapePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return normalizeCertNo(m[1]), m[1]
		}
	}
	return "", ""
}

func normalizeCertNo(raw string) string {
	return strings.ToUpper(certSeparators.ReplaceAllString(strings.TrimSpace(raw), "-"))
}

// extractInstitution scans for any canonical institution name from the
// directory. Codes() is sorted, so ties resolve deterministically.
func extractInstitution(text string, directory *domain.InstitutionDirectory) string {
	if directory == nil {
		return ""
	}
	lower := strings.ToLower(text)
	for _, code := range directory.Codes() {
		profile, ok := directory.ProfileByCode(code)
		if !ok || profile.Name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(profile.Name)) {
			return profile.Name
		}
	}
	return ""
}

// extractNameAndCourse captures the block after the award phrase. OCR
// often glues the course onto the name line, so a recognized course
// token is split off before the name is cleaned.
func extractNameAndCourse(text string) (string, string) {
	m := awardedToPattern.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	raw := strings.TrimSpace(whitespacePattern.ReplaceAllString(m[1], " "))

	course := ""
	if cm := coursePattern.FindStringSubmatch(raw); cm != nil {
		course = strings.TrimSpace(cm[1])
		raw = strings.TrimSpace(strings.Replace(raw, course, "", 1))
	}
	return cleanName(raw), course
}

// cleanName drops boilerplate that trails the recipient name and keeps
// alphabetic content only.
func cleanName(name string) string {
	name = nameNoisePattern.ReplaceAllString(name, "")
	name = nonAlphaPattern.ReplaceAllString(name, "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(name, " "))
}

// extractYear finds the first plausible graduation year. The
// certificate number is masked first so its embedded year digits do not
// shadow the real one.
func extractYear(text, certNo string) string {
	clean := text
	if certNo != "" {
		clean = strings.ReplaceAll(clean, certNo, "")
	}
	if m := yearPattern.FindString(clean); m != "" {
		return m
	}
	return ""
}
