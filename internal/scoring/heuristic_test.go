package scoring

import (
	"context"
	"testing"
	"time"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
)

func testRegistry(t *testing.T) *zones.Registry {
	t.Helper()
	reg, err := zones.Load("")
	if err != nil {
		t.Fatalf("load zones: %v", err)
	}
	return reg
}

func TestHeuristic_WorkedExample(t *testing.T) {
	// Jacou house observed 2 days ago worth 1 029 600:
	// 50 base + 30 recency + 20 value + 15 premium-high + 5 house = 120, clamped to 100.
	h := NewHeuristic(testRegistry(t))

	res := h.Score(context.Background(), prospect.Prospect{
		ZoneID:         "jacou",
		PropertyKind:   prospect.KindHouse,
		EstimatedPrice: 1_029_600,
		ObservedAt:     time.Now().Add(-48 * time.Hour),
	})

	if res.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", res.Score)
	}
	if res.AIPowered {
		t.Fatalf("heuristic result must not be marked ai-powered")
	}
}

func TestHeuristic_BonusTiers(t *testing.T) {
	h := NewHeuristic(testRegistry(t))
	now := time.Now()

	cases := []struct {
		name string
		p    prospect.Prospect
		want int
	}{
		{
			name: "bare candidate keeps base score",
			p:    prospect.Prospect{ZoneID: "nowhere"},
			want: 50,
		},
		{
			name: "recency within 30 days",
			p:    prospect.Prospect{ZoneID: "nowhere", ObservedAt: now.Add(-20 * 24 * time.Hour)},
			want: 70,
		},
		{
			name: "recency within 90 days",
			p:    prospect.Prospect{ZoneID: "nowhere", ObservedAt: now.Add(-60 * 24 * time.Hour)},
			want: 60,
		},
		{
			name: "stale signal adds nothing",
			p:    prospect.Prospect{ZoneID: "nowhere", ObservedAt: now.Add(-200 * 24 * time.Hour)},
			want: 50,
		},
		{
			name: "value above 500k",
			p:    prospect.Prospect{ZoneID: "nowhere", EstimatedPrice: 550_000},
			want: 65,
		},
		{
			name: "value above 400k",
			p:    prospect.Prospect{ZoneID: "nowhere", EstimatedPrice: 450_000},
			want: 60,
		},
		{
			name: "value at exactly 400k adds nothing",
			p:    prospect.Prospect{ZoneID: "nowhere", EstimatedPrice: 400_000},
			want: 50,
		},
		{
			name: "premium-mid zone",
			p:    prospect.Prospect{ZoneID: "port-marianne"},
			want: 60,
		},
		{
			name: "standard zone adds nothing",
			p:    prospect.Prospect{ZoneID: "lattes"},
			want: 50,
		},
		{
			name: "apartment gets no kind bonus",
			p:    prospect.Prospect{ZoneID: "nowhere", PropertyKind: prospect.KindApartment},
			want: 50,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := h.Score(context.Background(), tc.p).Score; got != tc.want {
				t.Fatalf("expected score %d, got %d", tc.want, got)
			}
		})
	}
}

func TestHeuristic_AdversarialInputStaysInRange(t *testing.T) {
	h := NewHeuristic(testRegistry(t))

	adversarial := []prospect.Prospect{
		{},
		{AreaSqm: -50, ZoneID: "no-such-zone", EstimatedPrice: -1},
		{ObservedAt: time.Now().Add(24 * time.Hour)}, // future date
		{ZoneID: "jacou", PropertyKind: prospect.KindHouse, EstimatedPrice: 1 << 60, ObservedAt: time.Now()},
	}

	for i, p := range adversarial {
		got := h.Score(context.Background(), p).Score
		if got < 0 || got > 100 {
			t.Fatalf("case %d: score %d out of [0,100]", i, got)
		}
	}
}
