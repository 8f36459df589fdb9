package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// VerifyRequest carries all request-scoped inputs for one verification.
// Image remains owned by the caller.
type VerifyRequest struct {
	RequestID string
	Image     domain.Image
	Extracted domain.ExtractedFields
	IncludeQr bool
	QrROI     *domain.ROI
}

// VerifyCertificate orchestrates the evidence channels. The fuzzy
// matcher and forgery engine are invoked independently and share no
// mutable state, so a surrounding service may run many verifications
// concurrently.
type VerifyCertificate struct {
	Records RecordSource
	Matcher *FuzzyRecordMatcher
	Forgery *ForgeryEngine
	Qr      *QrVerifier
	Policy  DecisionPolicy
	Audit   *AuditEmitter
}

func NewVerifyCertificate(records RecordSource, matcher *FuzzyRecordMatcher, forgery *ForgeryEngine, qr *QrVerifier, policy DecisionPolicy) (*VerifyCertificate, error) {
	if records == nil || matcher == nil || forgery == nil {
		return nil, errors.New("verification requires record source, matcher and forgery engine")
	}
	if policy == nil {
		policy = &DecisionEngineV1{}
	}
	return &VerifyCertificate{
		Records: records,
		Matcher: matcher,
		Forgery: forgery,
		Qr:      qr,
		Policy:  policy,
	}, nil
}

// Verify produces the final verdict for one certificate image.
// Unknown-institution and QR decode/parse failures are returned as
// structured errors; weak evidence merely produces an invalid verdict.
func (uc *VerifyCertificate) Verify(ctx context.Context, req VerifyRequest) (domain.VerificationVerdict, error) {
	candidates, err := uc.Records.ListRecords(ctx)
	if err != nil {
		return domain.VerificationVerdict{}, fmt.Errorf("%w: %v", domain.ErrRecordLookup, err)
	}

	matched, record, scores := uc.Matcher.Match(req.Extracted, candidates)

	forgery, err := uc.Forgery.Evaluate(ctx, req.Image, req.Extracted.Institution)
	if err != nil {
		return domain.VerificationVerdict{}, err
	}

	verdict := domain.VerificationVerdict{
		Matched:       matched,
		MatchedRecord: record,
		Scores:        scores,
		Forgery:       forgery,
	}

	if req.IncludeQr {
		if uc.Qr == nil {
			return domain.VerificationVerdict{}, errors.New("qr verification requested but not configured")
		}
		roi := req.QrROI
		if roi == nil {
			// Forgery evaluation above already resolved this institution,
			// so a second lookup cannot fail here.
			if profile, perr := uc.Forgery.Resolver.Resolve(req.Extracted.Institution); perr == nil {
				roi = profile.QrROI
			}
		}
		qr, err := uc.Qr.Verify(ctx, req.Image, roi)
		if err != nil {
			return domain.VerificationVerdict{}, err
		}
		verdict.Qr = &qr
	}

	evaluation, err := uc.Policy.Evaluate(ctx, policyInput(verdict, req.IncludeQr))
	if err != nil {
		return domain.VerificationVerdict{}, fmt.Errorf("decision policy: %w", err)
	}
	verdict.IsValid = evaluation.Result.Valid

	uc.emitAudit(ctx, req, verdict)
	return verdict, nil
}

func policyInput(verdict domain.VerificationVerdict, qrRequested bool) domain.PolicyInput {
	input := domain.PolicyInput{
		Matched:          verdict.Matched,
		Scores:           verdict.Scores,
		OverallAuthentic: verdict.Forgery.OverallAuthentic,
		SealAuthentic:    verdict.Forgery.SealAuthentic,
		SignatureAuth:    verdict.Forgery.SignatureAuthentic,
		QrRequested:      qrRequested,
	}
	if verdict.Qr != nil {
		input.QrStatus = string(verdict.Qr.Status)
		input.QrAuthentic = verdict.Qr.Authentic
	}
	return input
}

// emitAudit is best effort: an unavailable audit store never fails a
// verification that already completed.
func (uc *VerifyCertificate) emitAudit(ctx context.Context, req VerifyRequest, verdict domain.VerificationVerdict) {
	if uc.Audit == nil {
		return
	}
	result := domain.AuditResultFailure
	if verdict.IsValid {
		result = domain.AuditResultSuccess
	}
	certNo := req.Extracted.CertificateNumber
	if verdict.MatchedRecord != nil {
		certNo = verdict.MatchedRecord.CertificateNumber
	}
	if err := uc.Audit.Emit(ctx, domain.AuditEventVerification, req.RequestID, certNo, verdict, result); err != nil {
		log.Printf("audit append failed for request %s: %v", req.RequestID, err)
	}
}
