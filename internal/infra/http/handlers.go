package http

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/usecase"
)

// maxUploadBytes bounds certificate uploads; scans larger than this are
// rejected before decoding.
const maxUploadBytes = 20 << 20

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type verifyResponse struct {
	Success       bool                        `json:"success"`
	RequestID     string                      `json:"request_id"`
	Cached        bool                        `json:"cached"`
	ExtractedInfo domain.ExtractedFields      `json:"extracted_info"`
	Validation    validationSummary           `json:"validation"`
	OcrValidation ocrValidationResponse       `json:"ocr_validation"`
	Forgery       domain.ForgeryVerdict       `json:"forgery_validation"`
	Qr            *domain.QrResult            `json:"qr_validation,omitempty"`
}

type ocrValidationResponse struct {
	IsValid       bool                      `json:"is_valid"`
	Status        string                    `json:"status"`
	Scores        *domain.FieldScoreSet     `json:"confidence_scores,omitempty"`
	MatchedRecord *domain.CertificateRecord `json:"matched_record,omitempty"`
}

type validationSummary struct {
	IsValid bool   `json:"is_valid"`
	Status  string `json:"status"`
}

type qrScanResponse struct {
	Success bool            `json:"success"`
	Result  domain.QrResult `json:"result"`
}

func (s *Server) handleVerifyCertificate(c *gin.Context) {
	if s.verifyUC == nil || s.fields == nil || s.decode == nil {
		writeErrorCode(c, http.StatusServiceUnavailable, "NOT_CONFIGURED", "verification pipeline not configured")
		return
	}
	contents, ok := readUpload(c)
	if !ok {
		return
	}
	includeQr := c.Query("include_qr") == "true"
	requestID := uuid.NewString()

	cacheKey := imageKey(contents, includeQr)
	if s.cache != nil {
		if entry, hit, err := s.cache.Get(c.Request.Context(), cacheKey); err != nil {
			log.Printf("verdict cache get: %v", err)
		} else if hit {
			c.JSON(http.StatusOK, buildVerifyResponse(requestID, entry.Extracted, entry.Verdict, true))
			return
		}
	}

	img, err := s.decode(contents)
	if err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_IMAGE", "could not decode certificate image")
		return
	}
	defer img.Close()

	extracted, err := s.fields.Extract(c.Request.Context(), contents)
	if err != nil {
		writeErrorCode(c, http.StatusInternalServerError, "OCR_FAILED", err.Error())
		return
	}

	verdict, err := s.verifyUC.Verify(c.Request.Context(), usecase.VerifyRequest{
		RequestID: requestID,
		Image:     img,
		Extracted: extracted,
		IncludeQr: includeQr,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Put(c.Request.Context(), cacheKey, domain.CachedVerdict{Extracted: extracted, Verdict: verdict}, s.cfg.CacheTTL()); err != nil {
			log.Printf("verdict cache put: %v", err)
		}
	}

	c.JSON(http.StatusOK, buildVerifyResponse(requestID, extracted, verdict, false))
}

func (s *Server) handleScanQr(c *gin.Context) {
	if s.qr == nil || s.decode == nil {
		writeErrorCode(c, http.StatusServiceUnavailable, "NOT_CONFIGURED", "qr verification not configured")
		return
	}
	contents, ok := readUpload(c)
	if !ok {
		return
	}

	img, err := s.decode(contents)
	if err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_IMAGE", "could not decode image")
		return
	}
	defer img.Close()

	result, err := s.qr.Verify(c.Request.Context(), img, nil)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, qrScanResponse{Success: true, Result: result})
}

func (s *Server) handleListAuditEvents(c *gin.Context) {
	if s.audit == nil {
		writeErrorCode(c, http.StatusServiceUnavailable, "NOT_CONFIGURED", "audit trail not configured")
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			writeErrorCode(c, http.StatusBadRequest, "INVALID_LIMIT", "limit must be in 1..500")
			return
		}
		limit = parsed
	}
	events, err := s.audit.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// readUpload pulls the multipart "file" part, enforcing the size cap.
func readUpload(c *gin.Context) ([]byte, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		writeErrorCode(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return nil, false
	}
	if header.Size > maxUploadBytes {
		writeErrorCode(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "upload exceeds size limit")
		return nil, false
	}
	file, err := header.Open()
	if err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_FILE", "could not open upload")
		return nil, false
	}
	defer file.Close()
	contents, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil || int64(len(contents)) > maxUploadBytes {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_FILE", "could not read upload")
		return nil, false
	}
	return contents, true
}

// imageKey derives the cache key from the exact upload bytes and the
// qr flag, since the flag changes the verdict shape.
func imageKey(contents []byte, includeQr bool) string {
	sum := sha256.Sum256(contents)
	key := hex.EncodeToString(sum[:])
	if includeQr {
		return key + ":qr"
	}
	return key
}

func buildVerifyResponse(requestID string, extracted domain.ExtractedFields, verdict domain.VerificationVerdict, cached bool) verifyResponse {
	status := "INVALID"
	if verdict.IsValid {
		status = "VERIFIED"
	}
	ocrStatus := "INVALID"
	if verdict.Matched {
		ocrStatus = "VERIFIED"
	}
	return verifyResponse{
		Success:       true,
		RequestID:     requestID,
		Cached:        cached,
		ExtractedInfo: extracted,
		Validation:    validationSummary{IsValid: verdict.IsValid, Status: status},
		OcrValidation: ocrValidationResponse{
			IsValid:       verdict.Matched,
			Status:        ocrStatus,
			Scores:        verdict.Scores,
			MatchedRecord: verdict.MatchedRecord,
		},
		Forgery: verdict.Forgery,
		Qr:      verdict.Qr,
	}
}

func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	var parseErr *domain.QrParseError
	switch {
	case errors.Is(err, domain.ErrUnknownInstitution):
		status, code = http.StatusUnprocessableEntity, "UNKNOWN_INSTITUTION"
	case errors.Is(err, domain.ErrQrNotDetected):
		status, code = http.StatusUnprocessableEntity, "QR_NOT_DETECTED"
	case errors.As(err, &parseErr):
		status, code = http.StatusUnprocessableEntity, "QR_PARSE_FAILED"
	case errors.Is(err, domain.ErrInvalidRegion):
		status, code = http.StatusUnprocessableEntity, "INVALID_REGION"
	case errors.Is(err, domain.ErrRecordLookup):
		status, code = http.StatusServiceUnavailable, "RECORD_LOOKUP_FAILED"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	}
	writeErrorCode(c, status, code, err.Error())
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{Code: code, Message: message})
}
