package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	xerrors "github.com/TeakSlack/VulkanProjects/pkg/errors"
)

func TestFetchWritesDestination(t *testing.T) {
	body := bytes.Repeat([]byte("payload"), 10_000)

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(body)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "tools", "artifact.bin")

	var updates [][2]int64
	progress := func(done, total int64) {
		updates = append(updates, [2]int64{done, total})
	}

	f := NewFetcher()
	if err := f.Fetch(context.Background(), srv.URL, dest, progress); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("destination has %d bytes, want %d", len(got), len(body))
	}

	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("User-Agent = %q, want a browser user-agent", gotUA)
	}

	if len(updates) == 0 {
		t.Fatal("no progress updates")
	}
	want := int64(len(body))
	var prev int64
	for _, u := range updates {
		if u[0] < prev {
			t.Fatalf("progress went backwards: %d after %d", u[0], prev)
		}
		if u[0] > u[1] {
			t.Fatalf("done %d exceeds total %d", u[0], u[1])
		}
		prev = u[0]
	}
	if last := updates[len(updates)-1]; last[0] != want || last[1] != want {
		t.Errorf("final update = %v, want done == total == %d", last, want)
	}
}

func TestFetchUnknownLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Flushing before the body suppresses Content-Length.
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		w.Write([]byte("streamed"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.bin")

	f := NewFetcher()
	if err := f.Fetch(context.Background(), srv.URL, dest, func(done, total int64) {}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(got) != "streamed" {
		t.Errorf("destination = %q, want %q", got, "streamed")
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "artifact.bin")

	f := NewFetcher()
	err := f.Fetch(context.Background(), srv.URL, dest, nil)
	if err == nil {
		t.Fatal("Fetch() succeeded on a 404")
	}
	if !xerrors.Is(err, xerrors.CodeNetwork) {
		t.Errorf("error code = %v, want %v", xerrors.GetCode(err), xerrors.CodeNetwork)
	}

	assertNoLeftovers(t, dir)
}

func TestFetchTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100000")
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "artifact.bin")

	f := NewFetcher()
	err := f.Fetch(context.Background(), srv.URL, dest, func(done, total int64) {})
	if err == nil {
		t.Fatal("Fetch() succeeded on a truncated body")
	}
	if !xerrors.Is(err, xerrors.CodeNetwork) {
		t.Errorf("error code = %v, want %v", xerrors.GetCode(err), xerrors.CodeNetwork)
	}

	assertNoLeftovers(t, dir)
}

func TestFetchCustomUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := NewFetcher(WithUserAgent("custom/1.0"))
	dest := filepath.Join(t.TempDir(), "artifact.bin")
	if err := f.Fetch(context.Background(), srv.URL, dest, nil); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotUA != "custom/1.0" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "custom/1.0")
	}
}

// assertNoLeftovers fails when the directory contains any file, in
// particular a destination or stray .part file after a failed fetch.
func assertNoLeftovers(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		t.Errorf("unexpected leftover file %q", e.Name())
	}
}
