package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"prospector_backend/internal/prospect"
	"prospector_backend/platform/logger"
)

type fakeOracle struct {
	responses map[string]string // matched by prompt substring
	err       error
	calls     int
}

func (f *fakeOracle) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	for needle, resp := range f.responses {
		if strings.Contains(prompt, needle) {
			return resp, nil
		}
	}
	return "", nil
}

func newAIAssisted(t *testing.T, gen Generator) *AIAssisted {
	t.Helper()
	reg := testRegistry(t)
	return NewAIAssisted(gen, NewHeuristic(reg), reg, time.Second, logger.New("development"))
}

func TestAIAssisted_UsesFirstInteger(t *testing.T) {
	gen := &fakeOracle{responses: map[string]string{
		"Rate this real-estate": "Based on the signals, I would rate this prospect 87 out of 100.",
	}}
	a := newAIAssisted(t, gen)

	res := a.Score(context.Background(), prospect.Prospect{ZoneID: "jacou", Address: "12 rue des lilas"})
	if res.Score != 87 {
		t.Fatalf("expected oracle score 87, got %d", res.Score)
	}
	if !res.AIPowered {
		t.Fatalf("expected aiPowered=true when oracle value is used")
	}
}

func TestAIAssisted_ClampsOracleValue(t *testing.T) {
	gen := &fakeOracle{responses: map[string]string{"Rate this real-estate": "450"}}
	a := newAIAssisted(t, gen)

	res := a.Score(context.Background(), prospect.Prospect{ZoneID: "jacou"})
	if res.Score != 100 {
		t.Fatalf("expected clamped 100, got %d", res.Score)
	}
}

func TestAIAssisted_FallsBackOnError(t *testing.T) {
	gen := &fakeOracle{err: errors.New("connection refused")}
	a := newAIAssisted(t, gen)

	p := prospect.Prospect{ZoneID: "jacou", PropertyKind: prospect.KindHouse, EstimatedPrice: 650_000, ObservedAt: time.Now()}
	res := a.Score(context.Background(), p)

	want := NewHeuristic(testRegistry(t)).Score(context.Background(), p)
	if res.Score != want.Score {
		t.Fatalf("expected heuristic score %d on oracle failure, got %d", want.Score, res.Score)
	}
	if res.AIPowered {
		t.Fatalf("fallback result must report aiPowered=false")
	}
}

func TestAIAssisted_FallsBackWhenNoInteger(t *testing.T) {
	gen := &fakeOracle{responses: map[string]string{"Rate this real-estate": "I cannot rate this prospect."}}
	a := newAIAssisted(t, gen)

	res := a.Score(context.Background(), prospect.Prospect{ZoneID: "lattes"})
	if res.AIPowered {
		t.Fatalf("expected heuristic fallback when response has no integer")
	}
	if res.Score != 50 {
		t.Fatalf("expected base heuristic score 50, got %d", res.Score)
	}
}

func TestAIAssisted_AttachesForecastBestEffort(t *testing.T) {
	gen := &fakeOracle{responses: map[string]string{
		"Rate this real-estate": "90",
		"sells within":          `Sure: {"probability": 80, "timeline": "6 months", "confidence": "high"} — good luck.`,
	}}
	a := newAIAssisted(t, gen)

	res := a.Score(context.Background(), prospect.Prospect{ZoneID: "jacou"})
	if res.Forecast == nil {
		t.Fatalf("expected forecast to be attached")
	}
	if res.Forecast.Probability != 80 || res.Forecast.Timeline != "6 months" {
		t.Fatalf("unexpected forecast: %+v", res.Forecast)
	}
}

func TestAIAssisted_IgnoresGarbageForecast(t *testing.T) {
	gen := &fakeOracle{responses: map[string]string{
		"Rate this real-estate": "72",
		"sells within":          "no json here",
	}}
	a := newAIAssisted(t, gen)

	res := a.Score(context.Background(), prospect.Prospect{ZoneID: "jacou"})
	if res.Score != 72 || !res.AIPowered {
		t.Fatalf("forecast failure must not affect the score, got %+v", res)
	}
	if res.Forecast != nil {
		t.Fatalf("expected nil forecast for garbage response")
	}
}
