package pipeline

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shelfcat/shelfcat/internal/catalog"
	"github.com/shelfcat/shelfcat/internal/config"
	"github.com/shelfcat/shelfcat/internal/fetch"
)

func buildEPUB(t *testing.T, title, author, lang, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct{ name, content string }{
		{"mimetype", "application/epub+zip"},
		{"META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`},
		{"OEBPS/content.opf", fmt.Sprintf(`<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>%s</dc:title>
    <dc:creator>%s</dc:creator>
    <dc:language>%s</dc:language>
  </metadata>
  <manifest>
    <item id="ch1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
</package>`, title, author, lang)},
		{"OEBPS/chapter1.xhtml", fmt.Sprintf(`<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Chapter 1</title></head>
<body><p>%s</p></body>
</html>`, body)},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", f.name, err)
		}
		if _, err := w.Write([]byte(f.content)); err != nil {
			t.Fatalf("failed to write %s: %v", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
	return buf.Bytes()
}

type stubFetcher struct {
	data  []byte
	calls int
}

func (f *stubFetcher) Download(book config.Book, dir string) fetch.Result {
	f.calls++
	path := filepath.Join(dir, book.Filename)
	if info, err := os.Stat(path); err == nil {
		return fetch.Result{Exists: true, SizeKB: float64(info.Size()) / 1024}
	}
	if err := os.WriteFile(path, f.data, 0644); err != nil {
		return fetch.Result{Err: err.Error()}
	}
	return fetch.Result{Downloaded: true, Source: "Gutenberg", SizeKB: float64(len(f.data)) / 1024}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCategoryConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const classicsConfig = `category: American Classics
books:
  - title: Moby Dick
    author: Herman Melville
    filename: moby-dick.epub
    gutenberg_id: 2701
`

func classicsText() string {
	sentence := "The whale swam in the deep sea and the voyage was a great adventure. "
	return strings.Repeat(sentence, 200)
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := writeCategoryConfig(t, dir, "classics.yaml", classicsConfig)

	epubData := buildEPUB(t, "Moby Dick; or, The Whale", "Herman Melville", "en", classicsText())
	fetcher := &stubFetcher{data: epubData}

	p := New(Options{BaseDir: dir}, fetcher, quietLogger())
	sum, err := p.Run([]string{cfg})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sum.Books != 1 || sum.FilesPresent != 1 || sum.Verified != 1 || sum.Analyzed != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	records, err := catalog.LoadCSV(filepath.Join(dir, "classics", "catalog.csv"))
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	rec, ok := records["moby-dick.epub"]
	if !ok {
		t.Fatalf("no record for moby-dick.epub, got %v", records)
	}

	if !rec.FileExists {
		t.Error("expected FileExists")
	}
	if rec.DownloadSource != "Gutenberg" {
		t.Errorf("DownloadSource = %q, want Gutenberg", rec.DownloadSource)
	}
	if !rec.TitleMatch || !rec.AuthorMatch {
		t.Errorf("expected metadata to verify: %+v", rec)
	}
	if rec.ActualTitle != "Moby Dick; or, The Whale" {
		t.Errorf("ActualTitle = %q", rec.ActualTitle)
	}
	if rec.Language != "en" {
		t.Errorf("Language = %q, want en", rec.Language)
	}
	if !rec.Graded || rec.Grade <= 0 {
		t.Errorf("expected a positive grade, got graded=%v grade=%v", rec.Graded, rec.Grade)
	}
	if rec.CEFR == "" {
		t.Error("expected a CEFR band")
	}
	if len(rec.Themes) == 0 || rec.Themes[0] != "Adventure" {
		t.Errorf("Themes = %v, want Adventure first", rec.Themes)
	}
	if !rec.Complete() {
		t.Error("expected record to be complete")
	}
}

func TestRunSkipsCompleteRecords(t *testing.T) {
	dir := t.TempDir()
	cfg := writeCategoryConfig(t, dir, "classics.yaml", classicsConfig)

	epubData := buildEPUB(t, "Moby Dick", "Herman Melville", "en", classicsText())
	fetcher := &stubFetcher{data: epubData}
	p := New(Options{BaseDir: dir}, fetcher, quietLogger())

	if _, err := p.Run([]string{cfg}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	csvPath := filepath.Join(dir, "classics", "catalog.csv")
	first, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("failed to read catalog: %v", err)
	}
	callsAfterFirst := fetcher.calls

	if _, err := p.Run([]string{cfg}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if fetcher.calls != callsAfterFirst {
		t.Errorf("complete record was reprocessed: %d extra fetches", fetcher.calls-callsAfterFirst)
	}

	second, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("failed to re-read catalog: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("catalog changed on incremental rerun:\n%s\nvs\n%s", first, second)
	}
}

func TestRunForceReprocesses(t *testing.T) {
	dir := t.TempDir()
	cfg := writeCategoryConfig(t, dir, "classics.yaml", classicsConfig)

	epubData := buildEPUB(t, "Moby Dick", "Herman Melville", "en", classicsText())
	fetcher := &stubFetcher{data: epubData}
	p := New(Options{BaseDir: dir, Force: true}, fetcher, quietLogger())

	if _, err := p.Run([]string{cfg}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := p.Run([]string{cfg}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", fetcher.calls)
	}
}

func TestRunShortTextLeavesAnalysisEmpty(t *testing.T) {
	dir := t.TempDir()
	cfg := writeCategoryConfig(t, dir, "classics.yaml", classicsConfig)

	epubData := buildEPUB(t, "Moby Dick", "Herman Melville", "en", "Call me Ishmael.")
	fetcher := &stubFetcher{data: epubData}
	p := New(Options{BaseDir: dir}, fetcher, quietLogger())

	if _, err := p.Run([]string{cfg}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	records, err := catalog.LoadCSV(filepath.Join(dir, "classics", "catalog.csv"))
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	rec := records["moby-dick.epub"]
	if !rec.FileExists {
		t.Fatal("expected FileExists")
	}
	if rec.Graded || rec.CEFR != "" || len(rec.Themes) != 0 {
		t.Errorf("expected empty analysis fields, got %+v", rec)
	}
	if rec.Complete() {
		t.Error("ungraded record must not count as complete")
	}
}

// A corrupt catalog must not abort the category: the cache degrades to
// empty and every book is reprocessed.
func TestRunRecoversFromCorruptCatalog(t *testing.T) {
	dir := t.TempDir()
	cfg := writeCategoryConfig(t, dir, "classics.yaml", classicsConfig)

	folder := filepath.Join(dir, "classics")
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatalf("failed to create category folder: %v", err)
	}
	if err := os.WriteFile(filepath.Join(folder, "catalog.csv"), []byte("not,a,catalog\n"), 0644); err != nil {
		t.Fatalf("failed to write corrupt catalog: %v", err)
	}

	epubData := buildEPUB(t, "Moby Dick", "Herman Melville", "en", classicsText())
	fetcher := &stubFetcher{data: epubData}
	p := New(Options{BaseDir: dir}, fetcher, quietLogger())

	sum, err := p.Run([]string{cfg})
	if err != nil {
		t.Fatalf("Run failed on corrupt catalog: %v", err)
	}
	if sum.Analyzed != 1 {
		t.Errorf("expected the book to be reprocessed, summary %+v", sum)
	}

	records, err := catalog.LoadCSV(filepath.Join(folder, "catalog.csv"))
	if err != nil {
		t.Fatalf("rewritten catalog should load cleanly: %v", err)
	}
	if rec := records["moby-dick.epub"]; !rec.Complete() {
		t.Errorf("expected a complete rewritten record, got %+v", rec)
	}
}

func TestRunWritesExports(t *testing.T) {
	dir := t.TempDir()
	cfg := writeCategoryConfig(t, dir, "classics.yaml", classicsConfig)

	epubData := buildEPUB(t, "Moby Dick", "Herman Melville", "en", classicsText())
	fetcher := &stubFetcher{data: epubData}
	p := New(Options{BaseDir: dir, Formats: []string{"xlsx", "parquet"}}, fetcher, quietLogger())

	if _, err := p.Run([]string{cfg}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{"catalog.csv", "catalog.xlsx", "catalog.parquet"} {
		if _, err := os.Stat(filepath.Join(dir, "classics", name)); err != nil {
			t.Errorf("missing export %s: %v", name, err)
		}
	}
}
