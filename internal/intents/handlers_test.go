package intents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vipinshyam/math-tools-bridge/internal/args"
	"github.com/vipinshyam/math-tools-bridge/internal/upstream"
)

func setupIntents(t *testing.T, handler http.HandlerFunc) *Registry {
	t.Helper()

	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing metrics: %v", err)
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	reg := NewRegistry()
	if err := RegisterAll(reg, upstream.NewClient(srv.URL, "", srv.Client())); err != nil {
		t.Fatalf("registering intents: %v", err)
	}
	return reg
}

func jsonResult(t *testing.T, result any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewEncoder(w).Encode(map[string]any{"result": result}); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}
}

func TestAddIntentSpeaksTheSum(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, 5))

	resp, err := reg.Handle(context.Background(), "MathAdd", map[string]any{"a": 2.0, "b": 3.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Speech != "The sum of 2 and 3 is 5." {
		t.Fatalf("unexpected speech %q", resp.Speech)
	}
	if resp.Card.Title != "Addition" {
		t.Fatalf("expected card title %q, got %q", "Addition", resp.Card.Title)
	}
	if resp.Card.Content != "2 + 3 = 5" {
		t.Fatalf("unexpected card content %q", resp.Card.Content)
	}
}

func TestFibonacciIntentTruncatesSpeechNotCard(t *testing.T) {
	terms := make([]any, 40)
	for i := range terms {
		terms[i] = float64(i)
	}
	reg := setupIntents(t, jsonResult(t, terms))

	resp, err := reg.Handle(context.Background(), "MathFibonacci", map[string]any{"n": 40.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(resp.Speech, "29") {
		t.Fatalf("expected speech to include term 30, got %q", resp.Speech)
	}
	if strings.Contains(resp.Speech, "30,") || strings.Contains(resp.Speech, " 30") {
		t.Fatalf("expected speech to stop after 30 terms, got %q", resp.Speech)
	}
	if !strings.Contains(resp.Speech, "and more") {
		t.Fatalf("expected speech to mention more terms, got %q", resp.Speech)
	}
	for i := 0; i < 40; i++ {
		if !strings.Contains(resp.Card.Content, fmt.Sprintf("%d", i)) {
			t.Fatalf("expected card to contain term %d, got %q", i, resp.Card.Content)
		}
	}
}

func TestFibonacciIntentShortSequenceHasNoSuffix(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, []any{0.0, 1.0, 1.0}))

	resp, err := reg.Handle(context.Background(), "MathFibonacci", map[string]any{"n": 3.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(resp.Speech, "and more") {
		t.Fatalf("did not expect a truncation suffix, got %q", resp.Speech)
	}
	if resp.Card.Content != "n=3: [0, 1, 1]" {
		t.Fatalf("unexpected card content %q", resp.Card.Content)
	}
}

func TestIsPrimeIntentPhrasing(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   string
	}{
		{name: "prime", result: true, want: "17 is a prime number."},
		{name: "composite", result: false, want: "17 is not a prime number."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := setupIntents(t, jsonResult(t, tc.result))

			resp, err := reg.Handle(context.Background(), "MathIsPrime", map[string]any{"n": 17.0})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Speech != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, resp.Speech)
			}
		})
	}
}

func TestGcdIntentSpeech(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, 6))

	resp, err := reg.Handle(context.Background(), "MathGcd", map[string]any{"a": 12.0, "b": 18.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Speech != "The greatest common divisor of 12 and 18 is 6." {
		t.Fatalf("unexpected speech %q", resp.Speech)
	}
	if resp.Card.Content != "gcd(12, 18) = 6" {
		t.Fatalf("unexpected card content %q", resp.Card.Content)
	}
}

func TestLcmIntentSpeech(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, 36))

	resp, err := reg.Handle(context.Background(), "MathLcm", map[string]any{"a": 12.0, "b": 18.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Speech != "The least common multiple of 12 and 18 is 36." {
		t.Fatalf("unexpected speech %q", resp.Speech)
	}
}

func TestPrimeFactorsIntentJoinsWithMultiplicationSign(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, []any{2.0, 2.0, 3.0}))

	resp, err := reg.Handle(context.Background(), "MathPrimeFactors", map[string]any{"n": 12.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Speech != "The prime factors of 12 are 2 × 2 × 3." {
		t.Fatalf("unexpected speech %q", resp.Speech)
	}
}

func TestPrimeFactorsIntentEmptyResultSaysNone(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, []any{}))

	resp, err := reg.Handle(context.Background(), "MathPrimeFactors", map[string]any{"n": 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(resp.Speech, "none") {
		t.Fatalf("expected speech to say none, got %q", resp.Speech)
	}
}

func TestMeanIntentNormalizesValuesSlot(t *testing.T) {
	var gotBody map[string]any
	reg := setupIntents(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"result": 2})
	})

	resp, err := reg.Handle(context.Background(), "MathMean", map[string]any{"values": "1, 2, 3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values, ok := gotBody["values"].([]any)
	if !ok || len(values) != 3 {
		t.Fatalf("expected normalized values list, got %#v", gotBody["values"])
	}
	if resp.Speech != "The mean is 2." {
		t.Fatalf("unexpected speech %q", resp.Speech)
	}
}

func TestStdIntentMentionsSampleKind(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, 1.5))

	resp, err := reg.Handle(context.Background(), "MathStd", map[string]any{
		"values": "1, 2, 3",
		"sample": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Speech != "The sample standard deviation is 1.5." {
		t.Fatalf("unexpected speech %q", resp.Speech)
	}
}

func TestStdIntentDefaultsToPopulation(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, 1.5))

	resp, err := reg.Handle(context.Background(), "MathStd", map[string]any{"values": "1, 2, 3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(resp.Speech, "population") {
		t.Fatalf("expected population phrasing, got %q", resp.Speech)
	}
}

func TestIntentFailuresProduceNoSpeech(t *testing.T) {
	t.Run("missing slot", func(t *testing.T) {
		reg := setupIntents(t, jsonResult(t, 0))

		resp, err := reg.Handle(context.Background(), "MathAdd", map[string]any{"a": 1.0})

		var merr *args.MissingFieldError
		if !errors.As(err, &merr) {
			t.Fatalf("expected MissingFieldError, got %v", err)
		}
		if resp != nil {
			t.Fatalf("expected no response, got %#v", resp)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		reg := setupIntents(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"detail": "down"}`))
		})

		resp, err := reg.Handle(context.Background(), "MathAdd", map[string]any{"a": 1.0, "b": 2.0})

		var uerr *upstream.Error
		if !errors.As(err, &uerr) {
			t.Fatalf("expected upstream.Error, got %v", err)
		}
		if resp != nil {
			t.Fatalf("expected no response, got %#v", resp)
		}
	})
}

func TestHandleUnknownIntent(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, 0))

	_, err := reg.Handle(context.Background(), "MathModulo", nil)
	if !errors.Is(err, ErrUnknownIntent) {
		t.Fatalf("expected ErrUnknownIntent, got %v", err)
	}
}

func TestRegisterDuplicateTypeFails(t *testing.T) {
	reg := NewRegistry()
	noop := func(ctx context.Context, slots map[string]any) (*Response, error) { return nil, nil }

	if err := reg.Register("MathAdd", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Register("MathAdd", noop); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestTypesListsAllNineIntents(t *testing.T) {
	reg := setupIntents(t, jsonResult(t, 0))

	if got := len(reg.Types()); got != 9 {
		t.Fatalf("expected 9 intent types, got %d", got)
	}
}
