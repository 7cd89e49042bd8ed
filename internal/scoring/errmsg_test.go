package scoring

import "testing"

func TestExtractErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		expect string
	}{
		{
			name:   "error field with surrounding noise",
			body:   `Some prefix {"error":"Upstream provider timeout"} some suffix`,
			expect: "Upstream provider timeout",
		},
		{
			name:   "message field",
			body:   `{"message":"Endpoint request timed out"}`,
			expect: "Endpoint request timed out",
		},
		{
			name:   "error preferred over message",
			body:   `{"error":"real cause","message":"secondary"}`,
			expect: "real cause",
		},
		{
			name:   "nested gateway body object",
			body:   `{"statusCode":400,"body":"{\"error\":\"Invalid JSON in request body.\"}"}`,
			expect: "Invalid JSON in request body.",
		},
		{
			name:   "nested gateway body string",
			body:   `{"statusCode":500,"body":"\"internal failure\""}`,
			expect: "internal failure",
		},
		{
			name:   "braces inside quoted strings",
			body:   `log {"error":"brace } in \" text"} tail`,
			expect: `brace } in " text`,
		},
		{
			name:   "no json at all",
			body:   "Internal Server Error",
			expect: msgHTTP,
		},
		{
			name:   "unbalanced braces",
			body:   `{"error":"trunca`,
			expect: msgHTTP,
		},
		{
			name:   "object without known fields",
			body:   `{"status":"failed"}`,
			expect: msgHTTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractErrorMessage(tt.body); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestMatchBraceBlock(t *testing.T) {
	t.Parallel()

	block, ok := matchBraceBlock(`x {"a":{"b":1}} y {"c":2}`)
	if !ok {
		t.Fatal("expected a match")
	}
	if block != `{"a":{"b":1}}` {
		t.Fatalf("expected first balanced block, got %q", block)
	}

	if _, ok := matchBraceBlock("no braces here"); ok {
		t.Fatal("expected no match")
	}
}
