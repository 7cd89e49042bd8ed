package scoring

import (
	"encoding/json"
	"testing"
)

func mustEnvelope(t *testing.T, inner string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"statusCode": 200, "body": inner})
	if err != nil {
		t.Fatal(err)
	}
	return string(payload)
}

func TestDecodeCascadeEquivalence(t *testing.T) {
	t.Parallel()

	bare := `{"score":87,"summary":"ok"}`
	bodies := map[string]string{
		"bare":             bare,
		"enveloped":        mustEnvelope(t, bare),
		"enveloped junk":   "LOG PREFIX " + mustEnvelope(t, bare) + " trailing noise",
		"junk inside body": mustEnvelope(t, "model said: "+bare+" done"),
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result, err := Decode(body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Score != 87 || result.Summary != "ok" {
				t.Fatalf("unexpected result: %+v", result)
			}
		})
	}
}

func TestDecodeEmptyObject(t *testing.T) {
	t.Parallel()

	_, err := Decode(`{}`)
	if err == nil {
		t.Fatal("expected error for empty object")
	}
	if kind, ok := KindOf(err); !ok || kind != KindDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "not json at all", "<html>gateway timeout</html>"} {
		if _, err := Decode(body); err == nil {
			t.Fatalf("expected error for body %q", body)
		} else if kind, _ := KindOf(err); kind != KindDecode {
			t.Fatalf("expected decode error for body %q, got %v", body, err)
		}
	}
}

func TestDecodeSemanticZeroScore(t *testing.T) {
	t.Parallel()

	_, err := Decode(`{"score":0,"summary":"Unable to simulate this date."}`)
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, ok := KindOf(err); !ok || kind != KindSemantic {
		t.Fatalf("expected semantic error, got %v", err)
	}
}

func TestDecodeLegitimateZeroScore(t *testing.T) {
	t.Parallel()

	result, err := Decode(`{"score":0,"summary":"The date went terribly."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("unexpected score: %v", result.Score)
	}
}

func TestDecodeMalformedScore(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"summary":"ok"}`,
		`{"score":"87","summary":"ok"}`,
		`{"score":true,"summary":"ok"}`,
	} {
		if _, err := Decode(body); err == nil {
			t.Fatalf("expected error for body %q", body)
		} else if kind, _ := KindOf(err); kind != KindDecode {
			t.Fatalf("expected decode error for body %q, got %v", body, err)
		}
	}
}

func TestDecodeBlankSummary(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"score":42}`,
		`{"score":42,"summary":""}`,
		`{"score":42,"summary":"   "}`,
	} {
		if _, err := Decode(body); err == nil {
			t.Fatalf("expected error for body %q", body)
		}
	}
}

func TestDecodeMeta(t *testing.T) {
	t.Parallel()

	body := `{
		"score": 82,
		"summary": "A warm afternoon date.",
		"meta": {
			"compatibility_factors": {"shared_interests": "hiking, sci-fi"},
			"potential_concerns": "none",
			"candidate_profile": "I'm a designer who loves trail running."
		}
	}`

	result, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Meta == nil {
		t.Fatal("expected meta to be decoded")
	}
	if result.Meta.CompatibilityFactors["shared_interests"] != "hiking, sci-fi" {
		t.Fatalf("unexpected factors: %+v", result.Meta.CompatibilityFactors)
	}
	if result.Meta.CandidateProfile == "" || result.Meta.PotentialConcerns != "none" {
		t.Fatalf("unexpected meta: %+v", result.Meta)
	}
}

func TestDecodeIgnoresDecoyEnvelope(t *testing.T) {
	t.Parallel()

	// A top-level object without score or summary and with a non-string body
	// must not be accepted, and the cascade must keep going until the regex
	// fallback also fails.
	_, err := Decode(`{"statusCode":200,"body":{"nested":true}}`)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestDecodeEnvelopeWithErrorPayload(t *testing.T) {
	t.Parallel()

	// Enveloped body that parses but has no score or summary: exhausts the
	// cascade rather than being a vacuous success.
	_, err := Decode(mustEnvelope(t, `{"success":false}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, _ := KindOf(err); kind != KindDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	if err := ValidateDescription("exactly10!"); err != nil {
		t.Fatalf("10 trimmed characters must pass: %v", err)
	}
	if err := ValidateDescription("  exactly10!  "); err != nil {
		t.Fatalf("trimming must happen before the length check: %v", err)
	}

	err := ValidateDescription("too short")
	if err == nil {
		t.Fatal("9 characters must fail")
	}
	if kind, ok := KindOf(err); !ok || kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := ValidateDescription(""); err == nil {
		t.Fatal("empty description must fail")
	}
}
