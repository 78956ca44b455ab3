package scan

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"prospector_backend/internal/prospect"
)

// ScanRequestDTO is the JSON body of a scan request. An empty body scans
// every zone with the configured defaults.
type ScanRequestDTO struct {
	Zones []string `json:"zones"`
	Limit int      `json:"limit" validate:"omitempty,min=1,max=500"`
}

// WriteCSV renders a scan result as CSV for spreadsheet-driven follow-up.
// It operates purely on the returned result, like every other consumer.
func WriteCSV(w io.Writer, res *prospect.ScanResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{
		"id", "address", "zone", "area_sqm", "kind", "energy_class",
		"estimated_price", "score", "ai_powered", "sources", "observed_at",
	}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, p := range res.Prospects {
		observed := ""
		if !p.ObservedAt.IsZero() {
			observed = p.ObservedAt.Format(time.RFC3339)
		}
		row := []string{
			p.ID,
			p.Address,
			p.ZoneID,
			fmt.Sprintf("%.1f", p.AreaSqm),
			string(p.PropertyKind),
			string(p.EnergyClass),
			fmt.Sprintf("%d", p.EstimatedPrice),
			fmt.Sprintf("%d", p.Score),
			fmt.Sprintf("%t", p.AIPowered),
			strings.Join(p.Sources, ";"),
			observed,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
