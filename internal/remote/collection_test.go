package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

type record struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Tag  string `json:"tag,omitempty"`
}

func defaultTag(r record) record {
	if r.Tag == "" {
		r.Tag = "none"
	}
	return r
}

func newTestServer(t *testing.T, status int, body string, gotAuth *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotAuth != nil {
			*gotAuth = r.Header.Get("Authorization")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCollectionFetch_TableDriven(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCount   int
		wantMessage string
	}{
		{name: "array", status: http.StatusOK, body: `[{"_id":"1","name":"a"},{"_id":"2","name":"b","tag":"x"}]`, wantCount: 2},
		{name: "empty array", status: http.StatusOK, body: `[]`, wantCount: 0},
		{name: "object body", status: http.StatusOK, body: `{"doctors":[{"_id":"1"}]}`, wantCount: 0},
		{name: "null body", status: http.StatusOK, body: `null`, wantCount: 0},
		{name: "invalid json", status: http.StatusOK, body: `[{"_id":`, wantCount: 0},
		{name: "mistyped element", status: http.StatusOK, body: `[{"_id":1}]`, wantCount: 1},
		{name: "server message", status: http.StatusUnauthorized, body: `{"message":"Unauthorized"}`, wantMessage: "Unauthorized"},
		{name: "no server message", status: http.StatusInternalServerError, body: `oops`, wantMessage: "Request failed with status code 500"},
		{name: "empty server message", status: http.StatusBadGateway, body: `{"message":""}`, wantMessage: "Request failed with status code 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body, nil)
			c := NewCollection(server.URL, server.Client(), Endpoint{Name: "records", Path: "/api/records"}, defaultTag)

			got, err := c.Fetch(context.Background(), "")
			if tt.wantMessage != "" {
				var apiErr *Error
				if !errors.As(err, &apiErr) {
					t.Fatalf("Fetch error = %v, want *Error", err)
				}
				if apiErr.StatusCode != tt.status {
					t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
				}
				if msg := Message(err); msg != tt.wantMessage {
					t.Errorf("Message = %q, want %q", msg, tt.wantMessage)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch error: %v", err)
			}
			if got == nil {
				t.Fatal("Fetch returned nil slice, want non-nil")
			}
			if len(got) != tt.wantCount {
				t.Fatalf("len = %d, want %d (%v)", len(got), tt.wantCount, got)
			}
			for _, r := range got {
				if r.Tag == "" {
					t.Errorf("record %+v was not normalized", r)
				}
			}
		})
	}
}

func TestCollectionFetch_MistypedElementsKeepTheirPlace(t *testing.T) {
	body := `[{"_id":"r1","name":"a"},{"_id":2},"text",{"_id":"r4","name":{"first":"x"},"tag":"t"}]`
	server := newTestServer(t, http.StatusOK, body, nil)
	c := NewCollection(server.URL, server.Client(), Endpoint{Name: "records", Path: "/api/records"}, defaultTag)

	got, err := c.Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	want := []record{
		{ID: "r1", Name: "a", Tag: "none"},
		{Tag: "none"},
		{Tag: "none"},
		{ID: "r4", Tag: "t"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCollectionFetch_Auth(t *testing.T) {
	var gotAuth string
	server := newTestServer(t, http.StatusOK, `[]`, &gotAuth)

	authed := NewCollection[record](server.URL, server.Client(), Endpoint{Name: "private", Path: "/p", RequireAuth: true}, nil)
	if _, err := authed.Fetch(context.Background(), "tok-123"); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}

	open := NewCollection[record](server.URL, server.Client(), Endpoint{Name: "public", Path: "/o"}, nil)
	if _, err := open.Fetch(context.Background(), "tok-123"); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q on unauthenticated collection, want empty", gotAuth)
	}
}

func TestCollectionFetch_MissingTokenSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewCollection[record](server.URL, server.Client(), Endpoint{Name: "private", Path: "/p", RequireAuth: true}, nil)
	_, err := c.Fetch(context.Background(), "")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("Fetch error = %v, want ErrMissingCredentials", err)
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("server hit %d times, want 0", n)
	}
}

func TestCollectionFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewCollection[record](url, nil, Endpoint{Name: "records", Path: "/api/records"}, nil)
	_, err := c.Fetch(context.Background(), "")
	if err == nil {
		t.Fatal("Fetch succeeded against a closed server")
	}
	msg := Message(err)
	if msg == "" || !strings.Contains(msg, "/api/records") {
		t.Errorf("Message = %q, want transport error text naming the url", msg)
	}
}

func TestCollectionFetch_TrimsBaseURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewCollection[record](server.URL+"/", server.Client(), Endpoint{Name: "records", Path: "/api/records"}, nil)
	if _, err := c.Fetch(context.Background(), ""); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotPath != "/api/records" {
		t.Errorf("path = %q, want /api/records", gotPath)
	}
}

func TestLoadStateConstructors(t *testing.T) {
	if s := Ready[record](nil); !s.IsReady() || s.Items == nil || len(s.Items) != 0 {
		t.Errorf("Ready(nil) = %+v, want ready with empty items", s)
	}
	if s := Loading[record](); !s.IsLoading() || s.IsError() || s.IsReady() {
		t.Errorf("Loading() = %+v", s)
	}
	if s := Failed[record]("boom"); !s.IsError() || s.Err != "boom" {
		t.Errorf("Failed() = %+v", s)
	}
}
