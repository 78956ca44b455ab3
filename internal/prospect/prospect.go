// Package prospect defines the canonical domain types of the aggregation
// engine: raw per-source signals, normalized prospects, and scan results.
package prospect

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"
)

// PropertyKind classifies the property type of a signal.
type PropertyKind string

const (
	KindHouse     PropertyKind = "house"
	KindApartment PropertyKind = "apartment"
	KindUnknown   PropertyKind = "unknown"
)

// ParsePropertyKind maps raw per-source labels onto the canonical kinds.
// Sources report in French and English; anything unrecognized is Unknown.
func ParsePropertyKind(raw string) PropertyKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "house", "maison", "villa":
		return KindHouse
	case "apartment", "appartement", "flat":
		return KindApartment
	default:
		return KindUnknown
	}
}

// EnergyClass is the energy-performance class from the certificate registry.
type EnergyClass string

const (
	EnergyA       EnergyClass = "A"
	EnergyB       EnergyClass = "B"
	EnergyC       EnergyClass = "C"
	EnergyD       EnergyClass = "D"
	EnergyE       EnergyClass = "E"
	EnergyF       EnergyClass = "F"
	EnergyG       EnergyClass = "G"
	EnergyUnknown EnergyClass = "unknown"
)

// ParseEnergyClass maps a raw registry label onto a canonical class.
func ParseEnergyClass(raw string) EnergyClass {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A", "B", "C", "D", "E", "F", "G":
		return EnergyClass(strings.ToUpper(strings.TrimSpace(raw)))
	default:
		return EnergyUnknown
	}
}

// RawSignal is one source-specific observation before normalization. It is
// consumed exactly once by the aggregator and discarded afterwards.
type RawSignal struct {
	SourceName   string
	ZoneID       string
	Address      string
	AreaSqm      float64
	PropertyKind PropertyKind
	EnergyClass  EnergyClass
	ObservedAt   time.Time
	// RawKey is the source's own identifier, kept only for diagnostics.
	RawKey string
}

// Forecast is the optional descriptive sale prediction attached by the AI
// scoring strategy. It never participates in ranking.
type Forecast struct {
	Probability int    `json:"probability"`
	Timeline    string `json:"timeline"`
	Confidence  string `json:"confidence"`
}

// Prospect is the canonical, deduplicated candidate record.
type Prospect struct {
	ID             string       `json:"id"`
	Address        string       `json:"address"`
	ZoneID         string       `json:"zoneId"`
	AreaSqm        float64      `json:"areaSqm"`
	PropertyKind   PropertyKind `json:"propertyKind"`
	EnergyClass    EnergyClass  `json:"energyClass"`
	ObservedAt     time.Time    `json:"observedAt"`
	Sources        []string     `json:"sources"`
	EstimatedPrice int64        `json:"estimatedPrice"`
	Score          int          `json:"score"`
	AIPowered      bool         `json:"aiPowered"`
	Forecast       *Forecast    `json:"forecast,omitempty"`
}

// HasSource reports whether the named source already contributed.
func (p *Prospect) HasSource(name string) bool {
	for _, s := range p.Sources {
		if s == name {
			return true
		}
	}
	return false
}

// Stats summarizes one returned prospect list.
type Stats struct {
	Total    int   `json:"total"`
	Hot      int   `json:"hot"`
	AvgPrice int64 `json:"avgPrice"`
}

// ScanResult is the immutable outcome of one scan invocation.
type ScanResult struct {
	ScanID    string     `json:"scanId"`
	Prospects []Prospect `json:"prospects"`
	Stats     Stats      `json:"stats"`
	Timestamp time.Time  `json:"timestamp"`
}

// Fingerprint derives the stable dedup identifier from the normalized address
// and zone. The same physical property reported by different sources under
// differing raw formats must land on the same fingerprint, so source-specific
// keys are deliberately excluded.
func Fingerprint(address, zoneID string) string {
	sum := sha1.Sum([]byte(NormalizeAddress(address) + "|" + zoneID))
	return hex.EncodeToString(sum[:])[:16]
}

// NormalizeAddress flattens per-source formatting drift: case, punctuation,
// and whitespace runs.
func NormalizeAddress(address string) string {
	var b strings.Builder
	b.Grow(len(address))
	lastSpace := true
	for _, r := range strings.ToLower(address) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= 0x00C0: // keep accented letters
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
