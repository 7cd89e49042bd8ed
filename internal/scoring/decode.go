package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// The backend reply can be simulated-date text straight from a model, so the
// summary is inspected for the known "no result" marker.
const semanticFailureMarker = "unable to simulate"

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// A decodeStrategy attempts to recover a JSON object from a raw response
// body. Strategies are tried in order; a strategy "wins" only when its object
// carries a score or summary key, otherwise the cascade keeps falling
// through.
type decodeStrategy struct {
	name string
	fn   func(raw string) (map[string]any, error)
}

var decodeStrategies = []decodeStrategy{
	{"direct", decodeDirect},
	{"envelope", decodeEnvelope},
	{"envelope-extract", decodeEnvelopeExtract},
	{"extract", decodeExtract},
	{"regex", decodeRegex},
}

// Decode turns a raw response body into a validated ScoreResult. It tolerates
// gateway-proxy envelopes and noise around the JSON. Failures are typed:
// Decode when no strategy yields a usable object or the object is malformed,
// Semantic when the object is a known zero-score non-result.
func Decode(raw string) (*ScoreResult, error) {
	payload, err := decodePayload(raw)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Message: msgDecode, Err: err}
	}
	return resultFromPayload(payload)
}

func decodePayload(raw string) (map[string]any, error) {
	var lastErr error
	for _, strategy := range decodeStrategies {
		obj, err := strategy.fn(raw)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", strategy.name, err)
			continue
		}
		if hasScoreOrSummary(obj) {
			return obj, nil
		}
		lastErr = fmt.Errorf("%s: object carries neither score nor summary", strategy.name)
	}

	return nil, fmt.Errorf("decode strategies exhausted: %w", lastErr)
}

// decodeDirect parses the whole body as a JSON object.
func decodeDirect(raw string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("body is JSON null")
	}
	return obj, nil
}

// decodeEnvelope unwraps a gateway-proxy envelope whose body field is a
// JSON-encoded string.
func decodeEnvelope(raw string) (map[string]any, error) {
	inner, err := envelopeBody(raw)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(inner), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeEnvelopeExtract handles an envelope whose inner body carries noise
// around the JSON: the span between the first '{' and last '}' is parsed.
func decodeEnvelopeExtract(raw string) (map[string]any, error) {
	inner, err := envelopeBody(raw)
	if err != nil {
		return nil, err
	}
	block, ok := firstToLastBrace(inner)
	if !ok {
		return nil, errors.New("no object inside envelope body")
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeExtract handles a body that is not valid JSON at the top level:
// the first-'{'-to-last-'}' span is parsed, recursing one level when the
// extracted object itself turns out to be an envelope.
func decodeExtract(raw string) (map[string]any, error) {
	block, ok := firstToLastBrace(raw)
	if !ok {
		return nil, errors.New("no object in body")
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return nil, err
	}
	return unwrapEnvelope(obj), nil
}

// decodeRegex is the last resort: a regex grab of the outermost {...} block.
func decodeRegex(raw string) (map[string]any, error) {
	match := jsonBlockRe.FindString(raw)
	if match == "" {
		return nil, errors.New("no object-shaped block in body")
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(match), &obj); err != nil {
		return nil, err
	}
	return unwrapEnvelope(obj), nil
}

// envelopeBody parses the raw body and returns the inner body string of a
// gateway-proxy envelope. The statusCode field is optional.
func envelopeBody(raw string) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return "", err
	}
	inner, ok := obj["body"].(string)
	if !ok {
		return "", errors.New("no string body field")
	}
	return inner, nil
}

// unwrapEnvelope replaces an envelope object with its parsed inner body when
// possible, otherwise returns the object unchanged.
func unwrapEnvelope(obj map[string]any) map[string]any {
	inner, ok := obj["body"].(string)
	if !ok {
		return obj
	}
	var unwrapped map[string]any
	if err := json.Unmarshal([]byte(inner), &unwrapped); err != nil {
		return obj
	}
	return unwrapped
}

func firstToLastBrace(s string) (string, bool) {
	first := strings.IndexByte(s, '{')
	last := strings.LastIndexByte(s, '}')
	if first == -1 || last <= first {
		return "", false
	}
	return s[first : last+1], true
}

func hasScoreOrSummary(obj map[string]any) bool {
	if obj == nil {
		return false
	}
	_, hasScore := obj["score"]
	_, hasSummary := obj["summary"]
	return hasScore || hasSummary
}

// resultFromPayload validates the decoded object. A usable result needs a
// finite numeric score and a non-blank summary; a zero score whose summary
// carries the "unable to simulate" marker is a semantic failure, not a
// legitimate zero.
func resultFromPayload(payload map[string]any) (*ScoreResult, error) {
	rawScore, ok := payload["score"]
	if !ok {
		return nil, decodeFailure("score is missing")
	}
	score, ok := finiteNumber(rawScore)
	if !ok {
		return nil, decodeFailure(fmt.Sprintf("score is not a finite number: %v", rawScore))
	}

	summary, _ := payload["summary"].(string)
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, decodeFailure("summary is missing or blank")
	}

	if score == 0 && strings.Contains(strings.ToLower(summary), semanticFailureMarker) {
		return nil, &Error{
			Kind:    KindSemantic,
			Message: msgSemantic,
			Err:     errors.New("backend reported it was unable to simulate the date"),
		}
	}

	result := &ScoreResult{Score: score, Summary: summary}

	// Meta is best-effort: a malformed block is dropped, never fatal.
	if rawMeta, ok := payload["meta"].(map[string]any); ok {
		var meta Meta
		if err := mapstructure.Decode(rawMeta, &meta); err == nil {
			result.Meta = &meta
		}
	}

	return result, nil
}

func decodeFailure(reason string) *Error {
	return &Error{Kind: KindDecode, Message: msgDecode, Err: errors.New(reason)}
}

func finiteNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
