package pricing

import (
	"math"
	"testing"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/apperr"
)

var jacou = zones.GeoZone{ID: "jacou", DisplayName: "Jacou", BasePricePerSqm: 5200, Tier: zones.TierPremiumHigh}

func TestEstimate_WorkedExample(t *testing.T) {
	// 180m² house, class C: 180 × 5200 × 1.10 × 1.00 = 1_029_600.
	got, err := Estimate(180, prospect.KindHouse, prospect.EnergyC, jacou)
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if got != 1_029_600 {
		t.Fatalf("expected 1029600, got %d", got)
	}
}

func TestEstimate_Adjustments(t *testing.T) {
	cases := []struct {
		name  string
		kind  prospect.PropertyKind
		class prospect.EnergyClass
		want  int64
	}{
		{"apartment class D is base only", prospect.KindApartment, prospect.EnergyD, 520_000},
		{"unknown kind gets no kind bonus", prospect.KindUnknown, prospect.EnergyC, 520_000},
		{"class A adds 5%", prospect.KindApartment, prospect.EnergyA, 546_000},
		{"class B adds 5%", prospect.KindApartment, prospect.EnergyB, 546_000},
		{"class F cuts 5%", prospect.KindApartment, prospect.EnergyF, 494_000},
		{"class G cuts 5%", prospect.KindApartment, prospect.EnergyG, 494_000},
		{"house and class A stack", prospect.KindHouse, prospect.EnergyA, 600_600},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Estimate(100, tc.kind, tc.class, jacou)
			if err != nil {
				t.Fatalf("estimate: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestEstimate_MonotonicInArea(t *testing.T) {
	prev := int64(-1)
	for area := 10.0; area <= 400; area += 7.5 {
		got, err := Estimate(area, prospect.KindApartment, prospect.EnergyD, jacou)
		if err != nil {
			t.Fatalf("estimate(%v): %v", area, err)
		}
		if got < prev {
			t.Fatalf("estimate decreased at area %v: %d < %d", area, got, prev)
		}
		prev = got
	}
}

func TestEstimate_HouseNeverBelowApartment(t *testing.T) {
	for _, class := range []prospect.EnergyClass{prospect.EnergyA, prospect.EnergyD, prospect.EnergyG} {
		for _, area := range []float64{35, 90, 250} {
			house, err := Estimate(area, prospect.KindHouse, class, jacou)
			if err != nil {
				t.Fatalf("house estimate: %v", err)
			}
			apt, err := Estimate(area, prospect.KindApartment, class, jacou)
			if err != nil {
				t.Fatalf("apartment estimate: %v", err)
			}
			if house < apt {
				t.Fatalf("house estimate %d below apartment %d (area %v class %s)", house, apt, area, class)
			}
		}
	}
}

func TestEstimate_RejectsInvalidArea(t *testing.T) {
	for _, area := range []float64{0, -12, math.NaN(), math.Inf(1)} {
		_, err := Estimate(area, prospect.KindHouse, prospect.EnergyC, jacou)
		if err == nil {
			t.Fatalf("expected error for area %v", area)
		}
		if !apperr.Is(err, apperr.KindInvalidInput) {
			t.Fatalf("expected InvalidInput kind for area %v, got %v", area, err)
		}
	}
}
