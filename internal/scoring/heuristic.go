package scoring

import (
	"context"
	"time"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
)

const (
	baseScore = 50

	recencyWeekBonus    = 30
	recencyMonthBonus   = 20
	recencyQuarterBonus = 10

	valueHighBonus = 20 // > 600k
	valueMidBonus  = 15 // > 500k
	valueLowBonus  = 10 // > 400k

	zonePremiumHighBonus = 15
	zonePremiumMidBonus  = 10

	houseBonus = 5
)

// Heuristic is the mandatory deterministic scoring strategy. It is always
// available and is the fallback for the AI-assisted strategy.
type Heuristic struct {
	zones *zones.Registry
}

// NewHeuristic creates the deterministic strategy backed by the zone registry.
func NewHeuristic(reg *zones.Registry) *Heuristic {
	return &Heuristic{zones: reg}
}

// Score implements Strategy. A zero ObservedAt or an unknown zone contributes
// nothing rather than failing.
func (h *Heuristic) Score(_ context.Context, p prospect.Prospect) Result {
	score := baseScore

	if !p.ObservedAt.IsZero() {
		switch age := time.Since(p.ObservedAt); {
		case age <= 7*24*time.Hour:
			score += recencyWeekBonus
		case age <= 30*24*time.Hour:
			score += recencyMonthBonus
		case age <= 90*24*time.Hour:
			score += recencyQuarterBonus
		}
	}

	switch {
	case p.EstimatedPrice > 600_000:
		score += valueHighBonus
	case p.EstimatedPrice > 500_000:
		score += valueMidBonus
	case p.EstimatedPrice > 400_000:
		score += valueLowBonus
	}

	if zone, ok := h.zones.Get(p.ZoneID); ok {
		switch zone.Tier {
		case zones.TierPremiumHigh:
			score += zonePremiumHighBonus
		case zones.TierPremiumMid:
			score += zonePremiumMidBonus
		}
	}

	if p.PropertyKind == prospect.KindHouse {
		score += houseBonus
	}

	return Result{Score: clamp(score)}
}
