package domain

// PolicyInput is the document handed to the decision policy. It exposes
// the three evidence channels so a policy can recombine them, e.g. make
// the QR channel mandatory instead of supplementary.
type PolicyInput struct {
	Matched          bool           `json:"matched"`
	Scores           *FieldScoreSet `json:"scores,omitempty"`
	OverallAuthentic bool           `json:"overall_authentic"`
	SealAuthentic    bool           `json:"seal_authentic"`
	SignatureAuth    bool           `json:"signature_authentic"`
	QrStatus         string         `json:"qr_status,omitempty"`
	QrAuthentic      bool           `json:"qr_authentic"`
	QrRequested      bool           `json:"qr_requested"`
}

type PolicyDeny struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type PolicyResult struct {
	Valid bool         `json:"valid"`
	Deny  []PolicyDeny `json:"deny,omitempty"`
}

type PolicyEvaluation struct {
	BundleID   string       `json:"bundle_id,omitempty"`
	BundleHash string       `json:"bundle_hash,omitempty"`
	Result     PolicyResult `json:"result"`
}
