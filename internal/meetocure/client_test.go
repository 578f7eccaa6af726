package meetocure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meetocure/patient-dashboard/internal/models"
)

func newFakeUpstream(t *testing.T, doctors, hospitals any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/doctor", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}
		_ = json.NewEncoder(w).Encode(doctors)
	})
	mux.HandleFunc("/api/hospitals", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(hospitals)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestDoctorsDefaults(t *testing.T) {
	server := newFakeUpstream(t, []map[string]string{
		{"_id": "d1", "name": "Dr. Rao"},
		{"_id": "d2", "name": "Dr. Iyer", "specialization": "Cardiology", "address": "MG Road", "photo": "/p.png"},
	}, []any{})
	client := NewClientWithHttpClient(server.URL, server.Client(), "")

	got, err := client.Doctors().Fetch(context.Background(), "good")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	want := []models.Doctor{
		{ID: "d1", Name: "Dr. Rao", Specialization: "General", Address: "Unknown", Photo: DefaultPlaceholderImage},
		{ID: "d2", Name: "Dr. Iyer", Specialization: "Cardiology", Address: "MG Road", Photo: "/p.png"},
	}
	if len(got) != len(want) {
		t.Fatalf("len mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("idx %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestHospitalsDefaults(t *testing.T) {
	server := newFakeUpstream(t, []any{}, []map[string]string{
		{"_id": "h1", "name": "City Care"},
	})
	client := NewClientWithHttpClient(server.URL, server.Client(), "/assets/custom.png")

	got, err := client.Hospitals().Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].City != "Unknown" {
		t.Errorf("City = %q, want Unknown", got[0].City)
	}
	if got[0].Image != "/assets/custom.png" {
		t.Errorf("Image = %q, want /assets/custom.png", got[0].Image)
	}
}

func TestEndpointAuth(t *testing.T) {
	client := NewClient("http://example.invalid", 0, "")
	if !client.Doctors().RequiresAuth() {
		t.Error("doctors collection must require auth")
	}
	if client.Hospitals().RequiresAuth() {
		t.Error("hospitals collection must not require auth")
	}
}
