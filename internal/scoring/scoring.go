// Package scoring submits a partner-profile description to a compatibility
// scoring backend and decodes the reply into a typed result. The external
// contract is loose: replies may be bare JSON, an API-gateway envelope with a
// JSON-encoded body string, or JSON buried in surrounding noise, so decoding
// runs through an ordered cascade of recovery strategies.
package scoring

import (
	"context"
	"strings"
)

// MinDescriptionLength is the minimum trimmed length a description must reach
// to be submitted. Deliberately low so short but real profiles still pass.
const MinDescriptionLength = 10

// Meta carries the optional explanation block returned alongside a score.
// Every field is best-effort; decoding never fails on a missing one.
type Meta struct {
	CompatibilityFactors map[string]string `json:"compatibility_factors,omitempty" mapstructure:"compatibility_factors"`
	PotentialConcerns    string            `json:"potential_concerns,omitempty" mapstructure:"potential_concerns"`
	CandidateProfile     string            `json:"candidate_profile,omitempty" mapstructure:"candidate_profile"`
}

// ScoreResult is the decoded backend response: a finite compatibility score,
// a non-empty summary and optional metadata.
type ScoreResult struct {
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
	Meta    *Meta   `json:"meta,omitempty"`
}

// Scorer evaluates a formatted profile description. Implementations make a
// single attempt; resubmission is the caller's decision.
type Scorer interface {
	Submit(ctx context.Context, description string) (*ScoreResult, error)
}

// ValidateDescription checks that the description carries enough content to
// be worth submitting. It returns a Validation error before any network or
// model call is made.
func ValidateDescription(description string) error {
	if len(strings.TrimSpace(description)) < MinDescriptionLength {
		return &Error{
			Kind:    KindValidation,
			Message: msgValidation,
		}
	}
	return nil
}
