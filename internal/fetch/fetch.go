// Package fetch acquires EPUB files for catalog entries. The primary
// source is the book's declared URL (usually Project Gutenberg); when
// that fails and the book carries a Gutenberg id, the Internet Archive is
// searched as a fallback.
package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shelfcat/shelfcat/internal/config"
)

const (
	// minEPUBSize rejects error pages and stub downloads.
	minEPUBSize = 10000

	defaultUserAgent = "Mozilla/5.0 (compatible; shelfcat/1.0)"
	defaultTimeout   = 60 * time.Second

	archiveBase = "https://archive.org"
)

// Source labels recorded in the catalog.
const (
	SourceGutenberg = "Gutenberg"
	SourceDirect    = "Direct URL"
	SourceArchive   = "Internet Archive"
)

// Result describes the outcome of acquiring one book.
type Result struct {
	Downloaded bool
	Exists     bool
	Source     string
	SizeKB     float64
	Err        string
}

// Client downloads books over HTTP.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	Logger     *slog.Logger

	// searchBase overrides the Internet Archive host in tests.
	searchBase string
}

// NewClient creates a fetch client with sane defaults. The user agent can
// be overridden through SHELFCAT_USER_AGENT.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	ua := os.Getenv("SHELFCAT_USER_AGENT")
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		UserAgent:  ua,
		Logger:     logger,
	}
}

// Download fetches a book into dir under its target filename. Existing
// files are never re-downloaded. Failures are reported in the result, not
// as errors; a missing book must not abort the catalog run.
func (c *Client) Download(book config.Book, dir string) Result {
	path := filepath.Join(dir, book.Filename)

	if info, err := os.Stat(path); err == nil {
		return Result{Exists: true, SizeKB: float64(info.Size()) / 1024}
	}

	// No URL and no id means the book was marked unavailable upfront.
	if book.URL == "" && book.GutenbergID == 0 {
		return Result{Err: "No source available (marked as unavailable)"}
	}

	if book.URL != "" && c.tryURL(book.URL, path) {
		source := SourceDirect
		if strings.Contains(book.URL, "gutenberg.org") {
			source = SourceGutenberg
		}
		return c.downloaded(path, source)
	}

	if book.GutenbergID > 0 {
		for _, u := range c.searchArchive(book.Title, book.Author) {
			if c.tryURL(u, path) {
				return c.downloaded(path, SourceArchive)
			}
		}
	}

	return Result{Err: "Could not download from any source"}
}

func (c *Client) downloaded(path, source string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Err: fmt.Sprintf("Downloaded file vanished: %v", err)}
	}
	return Result{
		Downloaded: true,
		Source:     source,
		SizeKB:     float64(info.Size()) / 1024,
	}
}

// tryURL downloads one URL to path, validating that the body is a real
// EPUB (zip magic) of plausible size. Partial files are removed.
func (c *Client) tryURL(rawURL, path string) bool {
	data, err := c.get(rawURL)
	if err != nil {
		c.Logger.Debug("download attempt failed", "url", rawURL, "error", err)
		return false
	}

	if !bytes.HasPrefix(data, []byte("PK")) || len(data) < minEPUBSize {
		return false
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		c.Logger.Warn("failed to write download", "path", path, "error", err)
		os.Remove(path)
		return false
	}
	return true
}

// searchArchive queries the Internet Archive for EPUB editions of a book
// and returns candidate download URLs in preference order.
func (c *Client) searchArchive(title, author string) []string {
	query := url.Values{
		"q":      {fmt.Sprintf("%s %s AND format:EPUB", title, author)},
		"fl":     {"identifier"},
		"output": {"json"},
		"rows":   {"5"},
	}

	body, err := c.get(c.archiveURL("/advancedsearch.php") + "?" + query.Encode())
	if err != nil {
		c.Logger.Debug("archive search failed", "title", title, "error", err)
		return nil
	}

	var search struct {
		Response struct {
			Docs []struct {
				Identifier string `json:"identifier"`
			} `json:"docs"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &search); err != nil {
		return nil
	}

	docs := search.Response.Docs
	if len(docs) > 3 {
		docs = docs[:3]
	}

	var urls []string
	for _, doc := range docs {
		names := c.archiveEPUBNames(doc.Identifier)
		for _, name := range names {
			urls = append(urls, c.archiveURL("/download/"+doc.Identifier+"/"+name))
		}
	}
	return urls
}

// archiveEPUBNames lists an item's .epub files, _lcp.epub editions first
// since those are usually downloadable.
func (c *Client) archiveEPUBNames(identifier string) []string {
	body, err := c.get(c.archiveURL("/metadata/" + identifier))
	if err != nil {
		return nil
	}

	var meta struct {
		Files []struct {
			Name string `json:"name"`
		} `json:"files"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil
	}

	var names []string
	for _, f := range meta.Files {
		if strings.HasSuffix(f.Name, ".epub") {
			names = append(names, f.Name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		li := strings.Contains(names[i], "_lcp.epub")
		lj := strings.Contains(names[j], "_lcp.epub")
		if li != lj {
			return li
		}
		return names[i] < names[j]
	})
	return names
}

func (c *Client) archiveURL(path string) string {
	base := c.searchBase
	if base == "" {
		base = archiveBase
	}
	return base + path
}

func (c *Client) get(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
