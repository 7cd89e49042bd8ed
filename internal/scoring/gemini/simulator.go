package gemini

import (
	"context"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/heartbeam/matchsim/internal/logger"
	"github.com/heartbeam/matchsim/internal/scoring"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

//go:embed candidate_prompt.md
var candidatePromptTemplate string

//go:embed simulation_prompt.md
var simulationPromptTemplate string

const defaultMaxLogLength = 200

// Candidate generation gets a higher temperature for personality diversity;
// the simulation stays cooler so the JSON contract holds.
var (
	candidateOptions  = GenerateOptions{Temperature: 0.8, MaxOutputTokens: 300}
	simulationOptions = GenerateOptions{Temperature: 0.7, MaxOutputTokens: 1000}
)

// Simulator implements scoring.Scorer by running the date simulation locally
// with Gemini: one call invents a compatible candidate, a second simulates
// the date and scores it. The model reply goes through the same decode
// cascade as the HTTP backend.
type Simulator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewSimulator(generator contentGenerator, log *zap.Logger, maxLogLength int) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Simulator{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Submit validates the description, generates a candidate profile, simulates
// the date and returns the decoded score. The generated candidate profile is
// injected into the result meta so the caller can render it.
func (s *Simulator) Submit(ctx context.Context, description string) (*scoring.ScoreResult, error) {
	if err := scoring.ValidateDescription(description); err != nil {
		return nil, err
	}

	candidatePrompt := strings.ReplaceAll(candidatePromptTemplate, "{{USER_PROFILE}}", description)

	s.logger.Debug("generating candidate profile",
		zap.Int("prompt_length", utf8.RuneCountInString(candidatePrompt)),
		zap.String("prompt_preview", logger.TruncateForLog(candidatePrompt, s.maxLogLen)),
	)

	candidateProfile, err := s.generator.GenerateContent(ctx, candidatePrompt, candidateOptions)
	if err != nil {
		return nil, scoring.NewError(scoring.KindTransport, err)
	}
	candidateProfile = strings.TrimSpace(candidateProfile)

	simulationPrompt := strings.ReplaceAll(simulationPromptTemplate, "{{USER_PROFILE}}", description)
	simulationPrompt = strings.ReplaceAll(simulationPrompt, "{{CANDIDATE_PROFILE}}", candidateProfile)

	s.logger.Debug("simulating date",
		zap.Int("prompt_length", utf8.RuneCountInString(simulationPrompt)),
		zap.Int("candidate_profile_length", utf8.RuneCountInString(candidateProfile)),
	)

	raw, err := s.generator.GenerateContent(ctx, simulationPrompt, simulationOptions)
	if err != nil {
		return nil, scoring.NewError(scoring.KindTransport, err)
	}

	s.logger.Debug("date simulation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	result, err := scoring.Decode(stripFences(raw))
	if err != nil {
		return nil, err
	}

	// The candidate profile is generated here, not by the model's JSON, so it
	// is always attached to the meta block.
	if result.Meta == nil {
		result.Meta = &scoring.Meta{}
	}
	result.Meta.CandidateProfile = candidateProfile
	if result.Meta.CompatibilityFactors == nil {
		result.Meta.CompatibilityFactors = map[string]string{}
	}

	s.logger.Info("date simulation completed", zap.Float64("score", result.Score))

	return result, nil
}

// stripFences removes a markdown code fence around a model reply.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
