// Package epub inspects EPUB byte blobs: bibliographic metadata, plain
// text content, and cover images. Inspection is best-effort; a structurally
// broken archive yields empty fields rather than an error, so a single bad
// download never aborts a catalog run.
package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// MaxTextChars caps the amount of text accumulated from a single EPUB.
// Pathologically large archives would otherwise dominate analysis time.
const MaxTextChars = 500000

// Metadata holds the declarative bibliographic fields of an EPUB package
// document. Empty string means the field was not found.
type Metadata struct {
	Title    string
	Author   string
	Language string // 2-letter lowercase code, e.g. "en"
}

// Inspection is the combined result of inspecting one EPUB blob.
type Inspection struct {
	Metadata Metadata
	Text     string
}

// Reader provides access to the entries of an in-memory EPUB archive.
type Reader struct {
	zr    *zip.Reader
	files map[string]*zip.File
}

// NewReader opens an EPUB held in memory. Unlike a strict EPUB validator it
// does not require the mimetype entry; plenty of real-world files omit it.
func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	r := &Reader{
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		r.files[normalizePath(f.Name)] = f
	}
	return r, nil
}

// ReadFile reads the contents of a single entry.
func (r *Reader) ReadFile(path string) ([]byte, error) {
	f, ok := r.files[normalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Inspect extracts metadata and plain text from an EPUB blob. It never
// fails: an unreadable archive or missing package document simply leaves
// the corresponding fields empty.
func Inspect(data []byte) Inspection {
	var ins Inspection

	r, err := NewReader(data)
	if err != nil {
		return ins
	}

	ins.Metadata = r.ExtractMetadata()
	ins.Text = r.ExtractText(MaxTextChars)
	return ins
}

// OPF field patterns. The package document is matched with case-insensitive
// first-match patterns rather than a strict XML decoder so that malformed
// files still give up whatever fields they do declare.
var (
	opfPathRe  = regexp.MustCompile(`full-path="([^"]+\.opf)"`)
	dcTitleRe  = regexp.MustCompile(`(?is)<dc:title[^>]*>([^<]+)</dc:title>`)
	dcAuthorRe = regexp.MustCompile(`(?is)<dc:creator[^>]*>([^<]+)</dc:creator>`)
	dcLangRe   = regexp.MustCompile(`(?is)<dc:language[^>]*>([^<]+)</dc:language>`)
)

// ExtractMetadata locates the package document and pulls out the declared
// title, creator, and language. Each field is independently optional.
func (r *Reader) ExtractMetadata() Metadata {
	var md Metadata

	opfPath, ok := r.findOPF()
	if !ok {
		return md
	}

	content, err := r.ReadFile(opfPath)
	if err != nil {
		return md
	}

	if m := dcTitleRe.FindSubmatch(content); m != nil {
		md.Title = strings.TrimSpace(string(m[1]))
	}
	if m := dcAuthorRe.FindSubmatch(content); m != nil {
		md.Author = strings.TrimSpace(string(m[1]))
	}
	if m := dcLangRe.FindSubmatch(content); m != nil {
		md.Language = normalizeLanguage(string(m[1]))
	}

	return md
}

// findOPF returns the path of the package document: the first entry ending
// in ".opf", falling back to the rootfile declared in META-INF/container.xml.
func (r *Reader) findOPF() (string, bool) {
	for _, f := range r.zr.File {
		if strings.HasSuffix(f.Name, ".opf") {
			return f.Name, true
		}
	}

	container, err := r.ReadFile("META-INF/container.xml")
	if err != nil {
		return "", false
	}
	if m := opfPathRe.FindSubmatch(container); m != nil {
		return string(m[1]), true
	}
	return "", false
}

// normalizeLanguage truncates a language tag to its 2-letter base code,
// lowercased ("en-US" -> "en").
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if len(lang) > 2 {
		lang = lang[:2]
	}
	return strings.ToLower(lang)
}

// normalizePath normalizes entry paths (removes ./ prefix).
func normalizePath(path string) string {
	return strings.TrimPrefix(path, "./")
}
