package carma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListCarriers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(`<?xml version="1.0"?>
<CarrierListResponse>
	<Carriers>
		<Carrier><DisplayName>Coastal Lines</DisplayName><CarrierCode>CL01</CarrierCode></Carrier>
		<Carrier><DisplayName>Metro Express</DisplayName><CarrierCode>ME02</CarrierCode></Carrier>
	</Carriers>
</CarrierListResponse>`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	carriers, err := client.ListCarriers(context.Background())
	if err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}

	if len(carriers) != 2 {
		t.Fatalf("len(carriers) = %d, want 2", len(carriers))
	}
	if carriers[0].DisplayName != "Coastal Lines" || carriers[0].CarrierCode != "CL01" {
		t.Errorf("carriers[0] = %+v, want Coastal Lines/CL01", carriers[0])
	}
}

func TestListCarriersEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<CarrierListResponse><Carriers></Carriers></CarrierListResponse>`))
	}))
	defer server.Close()

	carriers, err := NewClient(server.URL).ListCarriers(context.Background())
	if err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}
	if len(carriers) != 0 {
		t.Errorf("len(carriers) = %d, want 0", len(carriers))
	}
}

func TestListCarriersServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL).ListCarriers(context.Background()); err == nil {
		t.Error("ListCarriers() should fail on a non-200 response")
	}
}

func TestListCarriersMalformedXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not xml at all <<<`))
	}))
	defer server.Close()

	if _, err := NewClient(server.URL).ListCarriers(context.Background()); err == nil {
		t.Error("ListCarriers() should fail on malformed XML")
	}
}
