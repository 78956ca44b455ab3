package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/apperr"
	"prospector_backend/platform/logger"
)

// Generator is the slice of the oracle client the strategy needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIAssisted decorates the heuristic strategy with an external scoring
// oracle. The oracle is best-effort: any irregularity falls through to the
// heuristic, so this strategy never produces "no score".
type AIAssisted struct {
	oracle   Generator
	fallback *Heuristic
	zones    *zones.Registry
	log      *logger.Logger
	timeout  time.Duration
}

// NewAIAssisted wraps the heuristic with the oracle.
func NewAIAssisted(gen Generator, fallback *Heuristic, reg *zones.Registry, timeout time.Duration, log *logger.Logger) *AIAssisted {
	return &AIAssisted{
		oracle:   gen,
		fallback: fallback,
		zones:    reg,
		log:      log,
		timeout:  timeout,
	}
}

var firstIntPattern = regexp.MustCompile(`\d+`)

// Score implements Strategy. AIPowered is true only when the oracle's value
// was actually used.
func (a *AIAssisted) Score(ctx context.Context, p prospect.Prospect) Result {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.oracle.Generate(callCtx, a.scorePrompt(p))
	if err != nil {
		a.log.Debug("falling back to heuristic", "error", apperr.OracleDegraded(err).Error())
		return a.fallback.Score(ctx, p)
	}

	match := firstIntPattern.FindString(text)
	if match == "" {
		a.log.Debug("falling back to heuristic", "reason", "no integer in oracle response")
		return a.fallback.Score(ctx, p)
	}

	score, err := strconv.Atoi(match)
	if err != nil {
		return a.fallback.Score(ctx, p)
	}

	result := Result{Score: clamp(score), AIPowered: true}

	// The sale forecast is descriptive only; losing it never degrades the score.
	if forecast := a.forecast(ctx, p); forecast != nil {
		result.Forecast = forecast
	}

	return result
}

// scorePrompt describes the candidate and the scoring criteria in natural
// language, asking for a bare 0-100 answer.
func (a *AIAssisted) scorePrompt(p prospect.Prospect) string {
	zoneName := p.ZoneID
	if zone, ok := a.zones.Get(p.ZoneID); ok {
		zoneName = zone.DisplayName
	}

	var b strings.Builder
	b.WriteString("Rate this real-estate seller prospect from 0 to 100.\n\n")
	fmt.Fprintf(&b, "Address: %s\n", p.Address)
	fmt.Fprintf(&b, "Zone: %s\n", zoneName)
	fmt.Fprintf(&b, "Property: %s, %.0f sqm, energy class %s\n", p.PropertyKind, p.AreaSqm, p.EnergyClass)
	fmt.Fprintf(&b, "Estimated value: %d EUR\n", p.EstimatedPrice)
	fmt.Fprintf(&b, "Reported by: %s\n", strings.Join(p.Sources, ", "))
	if !p.ObservedAt.IsZero() {
		fmt.Fprintf(&b, "Signal observed: %s\n", p.ObservedAt.Format("2006-01-02"))
	}
	b.WriteString("\nCriteria: interactive sales target properties above 400000 EUR; ")
	b.WriteString("premium zones around Montpellier rank higher; fresh signals mean urgency.\n")
	b.WriteString("Answer with a single number between 0 and 100, nothing else.")
	return b.String()
}

// forecast asks the oracle for a sale prediction. Best-effort: any failure
// returns nil.
func (a *AIAssisted) forecast(ctx context.Context, p prospect.Prospect) *prospect.Forecast {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Estimate the probability (0-100) that the owner of %s (%s, %d EUR) sells within 12 months. "+
			`Answer as JSON: {"probability": 0-100, "timeline": "X months", "confidence": "low/medium/high"}`,
		p.Address, p.ZoneID, p.EstimatedPrice)

	text, err := a.oracle.Generate(callCtx, prompt)
	if err != nil {
		return nil
	}

	payload := text
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			payload = text[start : end+1]
		}
	}

	var f prospect.Forecast
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return nil
	}
	if f.Probability < 0 || f.Probability > 100 {
		return nil
	}
	return &f
}
