package tracker

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDump = `{
  "openssl": {
    "CVE-2021-1234": {
      "description": "something bad",
      "scope": "local",
      "releases": {
        "bullseye": {
          "status": "resolved",
          "fixed_version": "1.1.1k-1",
          "urgency": "high",
          "repositories": {"bullseye": "1.1.1k-1"}
        },
        "buster": {
          "status": "open",
          "urgency": "low"
        }
      }
    }
  }
}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleDump))
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL).Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	want := Data{
		"openssl": {
			"CVE-2021-1234": Record{
				Description: "something bad",
				Scope:       "local",
				Releases: map[string]Release{
					"bullseye": {
						Status:       "resolved",
						FixedVersion: "1.1.1k-1",
						Urgency:      "high",
						Repositories: map[string]string{"bullseye": "1.1.1k-1"},
					},
					"buster": {
						Status:  "open",
						Urgency: "low",
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("unexpected dataset (-want +got):\n%s", diff)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "tracker down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch()
	if err == nil {
		t.Fatal("expected error for non-success status")
	}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch()
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("decode failure should not be a status error: %v", err)
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if _, err := NewClient(srv.URL).Fetch(); err == nil {
		t.Fatal("expected error for unreachable tracker")
	}
}

func TestNewClientDefaultURL(t *testing.T) {
	c := NewClient("")
	if c.url != DefaultURL {
		t.Errorf("expected default URL %s, got %s", DefaultURL, c.url)
	}
}
