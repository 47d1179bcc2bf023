package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func pageWith(meta string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head>%s</head><body><h1>Product</h1></body></html>`, meta)
	}
}

func TestFindImage_OGImage(t *testing.T) {
	srv := httptest.NewServer(pageWith(`<meta property="og:image" content="https://cdn.example.com/p.jpg">`))
	defer srv.Close()

	got, err := New().FindImage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FindImage() error = %v", err)
	}
	if got != "https://cdn.example.com/p.jpg" {
		t.Errorf("FindImage() = %q", got)
	}
}

func TestFindImage_TwitterFallback(t *testing.T) {
	srv := httptest.NewServer(pageWith(`<meta name="twitter:image" content="https://cdn.example.com/t.jpg">`))
	defer srv.Close()

	got, err := New().FindImage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FindImage() error = %v", err)
	}
	if got != "https://cdn.example.com/t.jpg" {
		t.Errorf("FindImage() = %q", got)
	}
}

func TestFindImage_NoImageIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(pageWith(``))
	defer srv.Close()

	got, err := New().FindImage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FindImage() error = %v", err)
	}
	if got != "" {
		t.Errorf("FindImage() = %q, want empty", got)
	}
}

func TestFindImage_RelativeURLRejected(t *testing.T) {
	srv := httptest.NewServer(pageWith(`<meta property="og:image" content="/images/p.jpg">`))
	defer srv.Close()

	got, err := New().FindImage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FindImage() error = %v", err)
	}
	if got != "" {
		t.Errorf("relative og:image should be ignored, got %q", got)
	}
}

func TestFindImage_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := New()
	l.maxRetries = 0
	if _, err := l.FindImage(context.Background(), srv.URL); err == nil {
		t.Error("expected an error for a 500 response")
	}
}

func TestFindImage_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		pageWith(`<meta property="og:image" content="https://cdn.example.com/p.jpg">`)(w, r)
	}))
	defer srv.Close()

	got, err := New().FindImage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FindImage() error = %v", err)
	}
	if got == "" || attempts != 2 {
		t.Errorf("got %q after %d attempts, want image on second attempt", got, attempts)
	}
}
