package zones

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	r, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	z, ok := r.Get("jacou")
	if !ok {
		t.Fatalf("expected default zone jacou")
	}
	if z.BasePricePerSqm != 5200 {
		t.Fatalf("expected jacou base price 5200, got %v", z.BasePricePerSqm)
	}
	if z.Tier != TierPremiumHigh {
		t.Fatalf("expected jacou tier premium-high, got %q", z.Tier)
	}

	if _, ok := r.Get("paris"); ok {
		t.Fatalf("expected unknown zone to miss")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	content := `zones:
  - id: grabels
    name: Grabels
    base_price_per_sqm: 3500
  - id: clapiers
    name: Clapiers
    base_price_per_sqm: 4200
    tier: premium-mid
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}

	z, ok := r.Get("grabels")
	if !ok {
		t.Fatalf("expected zone grabels")
	}
	if z.Tier != TierStandard {
		t.Fatalf("expected missing tier to default to standard, got %q", z.Tier)
	}

	z, _ = r.Get("clapiers")
	if z.Tier != TierPremiumMid {
		t.Fatalf("expected clapiers tier premium-mid, got %q", z.Tier)
	}
}

func TestLoad_RejectsBadTables(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty", "zones: []"},
		{"no id", "zones:\n  - name: X\n    base_price_per_sqm: 100"},
		{"zero price", "zones:\n  - id: x\n    base_price_per_sqm: 0"},
		{"duplicate", "zones:\n  - id: x\n    base_price_per_sqm: 100\n  - id: x\n    base_price_per_sqm: 200"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "zones.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("write temp file: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %s table", tc.name)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	r, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	all := r.Select(nil)
	if len(all) != len(r.All()) {
		t.Fatalf("empty selection should return all zones")
	}

	got := r.Select([]string{"jacou", "unknown", "lattes"})
	if len(got) != 2 {
		t.Fatalf("expected 2 resolved zones, got %d", len(got))
	}
	if got[0].ID != "jacou" || got[1].ID != "lattes" {
		t.Fatalf("unexpected selection order: %v", got)
	}
}
