package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/apperr"
	"prospector_backend/platform/cache"
	"prospector_backend/platform/logger"
)

var testZones = []zones.GeoZone{
	{ID: "jacou", DisplayName: "Jacou", BasePricePerSqm: 5200, Tier: zones.TierPremiumHigh},
	{ID: "lattes", DisplayName: "Lattes", BasePricePerSqm: 4100, Tier: zones.TierStandard},
}

func newAdapter(t *testing.T, handler http.Handler, minArea float64) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New("development")
	client := NewClient(srv.URL, "test-key", 100, log)
	return NewAdapter(client, cache.NewMemory(time.Minute), minArea, log)
}

func certificatesHandler(calls *atomic.Int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		switch r.URL.Query().Get("zone") {
		case "jacou":
			w.Write([]byte(`[
				{"certificate_id":"dpe-1","address":"12 Rue des Lilas, Jacou","floor_area_sqm":180,"building_type":"Maison","energy_class":"C","issued_at":"2026-08-27T10:00:00Z"},
				{"certificate_id":"dpe-2","address":"3 Impasse du Stade, Jacou","floor_area_sqm":40,"building_type":"Appartement","energy_class":"D","issued_at":"2026-08-20T10:00:00Z"}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestAdapter_FetchAppliesMinAreaPrefilter(t *testing.T) {
	a := newAdapter(t, certificatesHandler(nil), 60)

	signals, err := a.Fetch(context.Background(), testZones)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal after prefilter, got %d", len(signals))
	}

	s := signals[0]
	if s.SourceName != "dpe-registry" {
		t.Fatalf("unexpected source name %q", s.SourceName)
	}
	if s.PropertyKind != prospect.KindHouse || s.EnergyClass != prospect.EnergyC {
		t.Fatalf("unexpected mapping: %+v", s)
	}
	if s.ObservedAt.IsZero() {
		t.Fatalf("expected issued_at to map onto ObservedAt")
	}
}

func TestAdapter_FetchUsesCache(t *testing.T) {
	var calls atomic.Int64
	a := newAdapter(t, certificatesHandler(&calls), 60)

	jacouOnly := testZones[:1]
	if _, err := a.Fetch(context.Background(), jacouOnly); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := a.Fetch(context.Background(), jacouOnly); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call with warm cache, got %d", got)
	}
}

func TestAdapter_AllZonesFailingIsSourceUnavailable(t *testing.T) {
	a := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), 0)

	_, err := a.Fetch(context.Background(), testZones)
	if err == nil {
		t.Fatalf("expected error when every zone fails")
	}
	if !apperr.Is(err, apperr.KindSourceUnavailable) {
		t.Fatalf("expected SourceUnavailable, got %v", err)
	}
}

func TestAdapter_PartialZoneFailureStillReturnsSignals(t *testing.T) {
	a := newAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("zone") == "jacou" {
			w.Write([]byte(`[{"certificate_id":"dpe-1","address":"12 Rue des Lilas, Jacou","floor_area_sqm":180,"building_type":"Maison","energy_class":"C"}]`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}), 0)

	signals, err := a.Fetch(context.Background(), testZones)
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal from the healthy zone, got %d", len(signals))
	}
}

func TestClient_NotFoundMeansNoFilings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "", 100, logger.New("development"))
	payload, err := client.CertificatesByZone(context.Background(), "jacou", 0)
	if err != nil {
		t.Fatalf("404 should not be an error: %v", err)
	}
	certs, err := decodeCertificates(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(certs) != 0 {
		t.Fatalf("expected empty filing list, got %d", len(certs))
	}
}
