package intents

import (
	"context"
	"fmt"
	"strings"

	"github.com/vipinshyam/math-tools-bridge/internal/args"
	"github.com/vipinshyam/math-tools-bridge/internal/upstream"
)

// speechTermLimit caps how many sequence terms are read aloud. The card
// always shows the full sequence.
const speechTermLimit = 30

// RegisterAll binds the fixed set of intent types. The set never changes at
// runtime; a registration error here means the bridge is wired wrong.
func RegisterAll(reg *Registry, client *upstream.Client) error {
	handlers := map[string]Handler{
		"MathAdd":          addHandler(client),
		"MathFibonacci":    fibonacciHandler(client),
		"MathIsPrime":      isPrimeHandler(client),
		"MathGcd":          intPairHandler(client, "/algorithms/gcd", "greatest common divisor", "GCD", "gcd"),
		"MathLcm":          intPairHandler(client, "/algorithms/lcm", "least common multiple", "LCM", "lcm"),
		"MathPrimeFactors": primeFactorsHandler(client),
		"MathMean":         statisticHandler(client, "/math/mean", "mean", "Mean"),
		"MathMedian":       statisticHandler(client, "/math/median", "median", "Median"),
		"MathStd":          stdHandler(client),
	}

	for intentType, h := range handlers {
		if err := reg.Register(intentType, h); err != nil {
			return err
		}
	}
	return nil
}

func addHandler(client *upstream.Client) Handler {
	return func(ctx context.Context, slots map[string]any) (*Response, error) {
		a, err := args.Float(slots, "a")
		if err != nil {
			return nil, err
		}
		b, err := args.Float(slots, "b")
		if err != nil {
			return nil, err
		}

		data, err := client.Post(ctx, "/math/add", map[string]any{"a": a, "b": b})
		if err != nil {
			return nil, err
		}

		res := formatValue(data.Result())
		return &Response{
			Speech: fmt.Sprintf("The sum of %s and %s is %s.", formatFloat(a), formatFloat(b), res),
			Card: Card{
				Title:   "Addition",
				Content: fmt.Sprintf("%s + %s = %s", formatFloat(a), formatFloat(b), res),
			},
		}, nil
	}
}

func fibonacciHandler(client *upstream.Client) Handler {
	return func(ctx context.Context, slots map[string]any) (*Response, error) {
		n, err := args.Int(slots, "n")
		if err != nil {
			return nil, err
		}

		data, err := client.Post(ctx, "/algorithms/fibonacci", map[string]any{"n": n})
		if err != nil {
			return nil, err
		}

		seq := sequence(data.Result())
		spoken := seq
		if len(spoken) > speechTermLimit {
			spoken = spoken[:speechTermLimit]
		}
		speech := strings.Join(spoken, ", ")
		if len(seq) > speechTermLimit {
			speech += ", and more"
		}

		return &Response{
			Speech: fmt.Sprintf("The Fibonacci sequence up to %d terms is: %s.", n, speech),
			Card: Card{
				Title:   "Fibonacci",
				Content: fmt.Sprintf("n=%d: [%s]", n, strings.Join(seq, ", ")),
			},
		}, nil
	}
}

func isPrimeHandler(client *upstream.Client) Handler {
	return func(ctx context.Context, slots map[string]any) (*Response, error) {
		n, err := args.Int(slots, "n")
		if err != nil {
			return nil, err
		}

		data, err := client.Post(ctx, "/algorithms/is_prime", map[string]any{"n": n})
		if err != nil {
			return nil, err
		}

		prime := truthy(data.Result())
		verdict := "not a prime"
		if prime {
			verdict = "a prime"
		}

		return &Response{
			Speech: fmt.Sprintf("%d is %s number.", n, verdict),
			Card: Card{
				Title:   "Prime check",
				Content: fmt.Sprintf("%d → %t", n, prime),
			},
		}, nil
	}
}

// intPairHandler covers the two-integer number-theory intents, which differ
// only in endpoint and phrasing.
func intPairHandler(client *upstream.Client, endpoint, noun, title, abbrev string) Handler {
	return func(ctx context.Context, slots map[string]any) (*Response, error) {
		a, err := args.Int(slots, "a")
		if err != nil {
			return nil, err
		}
		b, err := args.Int(slots, "b")
		if err != nil {
			return nil, err
		}

		data, err := client.Post(ctx, endpoint, map[string]any{"a": a, "b": b})
		if err != nil {
			return nil, err
		}

		res := formatValue(data.Result())
		return &Response{
			Speech: fmt.Sprintf("The %s of %d and %d is %s.", noun, a, b, res),
			Card: Card{
				Title:   title,
				Content: fmt.Sprintf("%s(%d, %d) = %s", abbrev, a, b, res),
			},
		}, nil
	}
}

func primeFactorsHandler(client *upstream.Client) Handler {
	return func(ctx context.Context, slots map[string]any) (*Response, error) {
		n, err := args.Int(slots, "n")
		if err != nil {
			return nil, err
		}

		data, err := client.Post(ctx, "/algorithms/prime_factors", map[string]any{"n": n})
		if err != nil {
			return nil, err
		}

		factors := sequence(data.Result())
		spoken := "none"
		if len(factors) > 0 {
			spoken = strings.Join(factors, " × ")
		}

		return &Response{
			Speech: fmt.Sprintf("The prime factors of %d are %s.", n, spoken),
			Card: Card{
				Title:   "Prime factors",
				Content: fmt.Sprintf("%d → [%s]", n, strings.Join(factors, ", ")),
			},
		}, nil
	}
}

// statisticHandler covers the list statistics intents that take only a
// values slot.
func statisticHandler(client *upstream.Client, endpoint, noun, title string) Handler {
	return func(ctx context.Context, slots map[string]any) (*Response, error) {
		values, err := args.Values(slots["values"])
		if err != nil {
			return nil, err
		}

		data, err := client.Post(ctx, endpoint, map[string]any{"values": values})
		if err != nil {
			return nil, err
		}

		res := formatValue(data.Result())
		return &Response{
			Speech: fmt.Sprintf("The %s is %s.", noun, res),
			Card: Card{
				Title:   title,
				Content: fmt.Sprintf("values=%s → %s", formatValues(values), res),
			},
		}, nil
	}
}

func stdHandler(client *upstream.Client) Handler {
	return func(ctx context.Context, slots map[string]any) (*Response, error) {
		values, err := args.Values(slots["values"])
		if err != nil {
			return nil, err
		}
		sample := args.Bool(slots, "sample", false)

		data, err := client.Post(ctx, "/math/std", map[string]any{"values": values, "sample": sample})
		if err != nil {
			return nil, err
		}

		kind := "population"
		if sample {
			kind = "sample"
		}

		res := formatValue(data.Result())
		return &Response{
			Speech: fmt.Sprintf("The %s standard deviation is %s.", kind, res),
			Card: Card{
				Title:   "Std",
				Content: fmt.Sprintf("values=%s, sample=%t → %s", formatValues(values), sample, res),
			},
		}, nil
	}
}
