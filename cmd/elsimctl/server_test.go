package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gosimilarity/elsim/elsimcfg"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestHealthzReturnsOK(t *testing.T) {
	srv := newServer(elsimcfg.Default(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCompareEndpointRequiresBothDirs(t *testing.T) {
	srv := newServer(elsimcfg.Default(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/compare?a=/tmp", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCompareEndpointReturnsReport(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, dirA, "one.txt", "Hello world. This is a test.")
	writeFile(t, dirB, "one.txt", "Hello world. This is a different test.")

	srv := newServer(elsimcfg.Default(), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/compare?a="+dirA+"&b="+dirB, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected a non-empty report body")
	}
}
