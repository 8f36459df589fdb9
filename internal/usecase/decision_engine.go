package usecase

import (
	"context"
	"sort"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

const DecisionEngineVersion = "decision.v1"

// DecisionEngineV1 is the default decision policy: a certificate is
// valid iff the fuzzy matcher found a record and the visual channel is
// authentic. The QR channel is supplementary and never alters the
// outcome; a rego bundle may replace this engine when a deployment wants
// a different composition.
type DecisionEngineV1 struct{}

func (e *DecisionEngineV1) Evaluate(_ context.Context, input domain.PolicyInput) (domain.PolicyEvaluation, error) {
	deny := decisionReasons(input)
	return domain.PolicyEvaluation{
		BundleID: DecisionEngineVersion,
		Result: domain.PolicyResult{
			Valid: input.Matched && input.OverallAuthentic,
			Deny:  deny,
		},
	}, nil
}

func decisionReasons(input domain.PolicyInput) []domain.PolicyDeny {
	reasons := make(map[string]struct{})
	if !input.Matched {
		reasons["RECORD_NOT_MATCHED"] = struct{}{}
	}
	if !input.SealAuthentic {
		reasons["SEAL_NOT_AUTHENTIC"] = struct{}{}
	}
	if !input.SignatureAuth {
		reasons["SIGNATURE_NOT_AUTHENTIC"] = struct{}{}
	}
	if input.QrRequested && !input.QrAuthentic {
		reasons["QR_NOT_AUTHENTIC"] = struct{}{}
	}
	if len(reasons) == 0 {
		return nil
	}
	codes := make([]string, 0, len(reasons))
	for code := range reasons {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	deny := make([]domain.PolicyDeny, 0, len(codes))
	for _, code := range codes {
		deny = append(deny, domain.PolicyDeny{Code: code})
	}
	return deny
}
