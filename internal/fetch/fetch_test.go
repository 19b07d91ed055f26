package fetch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shelfcat/shelfcat/internal/config"
)

// epubBytes returns a minimal zip blob padded past the size floor.
func epubBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("mimetype")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte("application/epub+zip")); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	pad, err := zw.CreateHeader(&zip.FileHeader{Name: "padding.txt", Method: zip.Store})
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := pad.Write(bytes.Repeat([]byte("shelfcat "), 2000)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func testClient(server *httptest.Server) *Client {
	return &Client{
		HTTPClient: server.Client(),
		UserAgent:  "shelfcat-test",
		Logger:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

func TestDownload_Primary(t *testing.T) {
	blob := epubBytes(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(blob)
	}))
	defer server.Close()

	dir := t.TempDir()
	c := testClient(server)
	book := config.Book{
		Title:    "Moby Dick",
		Author:   "Herman Melville",
		Filename: "moby.epub",
		URL:      server.URL + "/ebooks/2701.epub3.images",
	}

	res := c.Download(book, dir)
	if !res.Downloaded {
		t.Fatalf("Download failed: %+v", res)
	}
	if res.Source != SourceDirect {
		t.Errorf("Source = %q, want %q for non-gutenberg host", res.Source, SourceDirect)
	}
	if res.SizeKB <= 0 {
		t.Errorf("SizeKB = %v, want > 0", res.SizeKB)
	}
	if _, err := os.Stat(filepath.Join(dir, "moby.epub")); err != nil {
		t.Errorf("Downloaded file missing: %v", err)
	}
}

func TestDownload_ExistingFileSkipped(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "have.epub"), []byte("already here"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	c := NewClient(nil)
	res := c.Download(config.Book{Filename: "have.epub", URL: "http://127.0.0.1:9/unreachable"}, dir)

	if !res.Exists {
		t.Errorf("Expected existing file to be reported, got %+v", res)
	}
	if res.Downloaded {
		t.Error("Existing file must not be re-downloaded")
	}
}

func TestDownload_Unavailable(t *testing.T) {
	c := NewClient(nil)
	res := c.Download(config.Book{Filename: "none.epub"}, t.TempDir())

	if res.Downloaded || res.Exists {
		t.Errorf("Unavailable book should not touch the network, got %+v", res)
	}
	if res.Err == "" {
		t.Error("Expected an explanatory error string")
	}
}

func TestDownload_RejectsNonEPUB(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>404 not found, sorry</html>")
	}))
	defer server.Close()

	dir := t.TempDir()
	c := testClient(server)
	res := c.Download(config.Book{Filename: "bad.epub", URL: server.URL + "/x"}, dir)

	if res.Downloaded {
		t.Fatal("HTML error page must not be accepted as an EPUB")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.epub")); !os.IsNotExist(err) {
		t.Error("Rejected download must not leave a file behind")
	}
}

func TestDownload_ArchiveFallback(t *testing.T) {
	blob := epubBytes(t)
	mux := http.NewServeMux()

	mux.HandleFunc("/primary", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	mux.HandleFunc("/advancedsearch.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"docs":[{"identifier":"mobydick00melv"}]}}`)
	})
	mux.HandleFunc("/metadata/mobydick00melv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"files":[{"name":"scan.pdf"},{"name":"mobydick.epub"},{"name":"mobydick_lcp.epub"}]}`)
	})
	mux.HandleFunc("/download/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "_lcp.epub") {
			http.Error(w, "restricted", http.StatusForbidden)
			return
		}
		w.Write(blob)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	c := testClient(server)
	c.searchBase = server.URL

	book := config.Book{
		Title:       "Moby Dick",
		Author:      "Herman Melville",
		Filename:    "moby.epub",
		URL:         server.URL + "/primary",
		GutenbergID: 2701,
	}

	res := c.Download(book, dir)
	if !res.Downloaded {
		t.Fatalf("Expected archive fallback to succeed, got %+v", res)
	}
	if res.Source != SourceArchive {
		t.Errorf("Source = %q, want %q", res.Source, SourceArchive)
	}
}
