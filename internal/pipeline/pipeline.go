// Package pipeline runs the per-category catalog sequence: download,
// inspect, verify, score, detect themes, persist. Items are processed
// one at a time; a failure on one book degrades that book's record and
// the run continues.
package pipeline

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disintegration/imaging"

	"github.com/shelfcat/shelfcat/internal/catalog"
	"github.com/shelfcat/shelfcat/internal/config"
	"github.com/shelfcat/shelfcat/internal/epub"
	"github.com/shelfcat/shelfcat/internal/fetch"
	"github.com/shelfcat/shelfcat/internal/langid"
	"github.com/shelfcat/shelfcat/internal/readability"
	"github.com/shelfcat/shelfcat/internal/themes"
	"github.com/shelfcat/shelfcat/internal/verify"
)

// minAnalysisChars gates the analysis stages: shorter extractions are
// treated as "no usable text" and leave the analysis fields empty.
const minAnalysisChars = 500

// catalogName is the per-category CSV filename.
const catalogName = "catalog.csv"

// Fetcher acquires one book into a directory.
type Fetcher interface {
	Download(book config.Book, dir string) fetch.Result
}

// Options configures a catalog run.
type Options struct {
	BaseDir string        // directory holding category folders
	Force   bool          // reprocess every book, ignoring cached records
	Covers  bool          // write cover thumbnails next to the books
	Formats []string      // extra catalog exports: "xlsx", "parquet"
	Pause   time.Duration // politeness delay after each processed book
}

// Summary aggregates a run across categories.
type Summary struct {
	Books        int
	FilesPresent int
	Verified     int
	Analyzed     int
}

// Pipeline processes category configs into catalog records.
type Pipeline struct {
	opts    Options
	fetcher Fetcher
	scorer  *readability.Scorer
	logger  *slog.Logger
}

// New creates a pipeline. A nil fetcher defaults to the HTTP client; a
// nil logger defaults to slog's.
func New(opts Options, fetcher Fetcher, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if fetcher == nil {
		fetcher = fetch.NewClient(logger)
	}
	return &Pipeline{
		opts:    opts,
		fetcher: fetcher,
		scorer:  readability.NewScorer(),
		logger:  logger,
	}
}

// Run processes each category config, writes its catalog (and any extra
// exports), and returns aggregate totals.
func (p *Pipeline) Run(configPaths []string) (Summary, error) {
	var sum Summary

	for _, path := range configPaths {
		cat, err := config.Load(path)
		if err != nil {
			return sum, err
		}

		records, err := p.ProcessCategory(cat)
		if err != nil {
			return sum, err
		}

		folder := filepath.Join(p.opts.BaseDir, cat.Folder)
		if err := catalog.WriteCSV(filepath.Join(folder, catalogName), records); err != nil {
			return sum, err
		}
		if err := p.writeExports(folder, records); err != nil {
			return sum, err
		}

		for _, r := range records {
			sum.Books++
			if r.FileExists {
				sum.FilesPresent++
			}
			if r.TitleMatch && r.AuthorMatch {
				sum.Verified++
			}
			if r.Graded {
				sum.Analyzed++
			}
		}
	}

	return sum, nil
}

// ProcessCategory produces one record per book in the category,
// carrying over cached complete records unless the run is forced.
func (p *Pipeline) ProcessCategory(cat *config.Category) ([]catalog.Record, error) {
	folder := filepath.Join(p.opts.BaseDir, cat.Folder)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, err
	}

	cache := map[string]catalog.Record{}
	if !p.opts.Force {
		loaded, err := catalog.LoadCSV(filepath.Join(folder, catalogName))
		if err != nil {
			p.logger.Warn("failed to load existing catalog, reprocessing all books",
				"folder", cat.Folder, "error", err)
		} else {
			cache = loaded
		}
	}

	p.logger.Info("processing category",
		"category", cat.Name, "folder", cat.Folder, "books", len(cat.Books))

	records := make([]catalog.Record, 0, len(cat.Books))
	skipped := 0
	for i, book := range cat.Books {
		if cached, ok := cache[book.Filename]; ok && cached.Complete() {
			records = append(records, cached)
			skipped++
			continue
		}

		p.logger.Info("processing book",
			"index", i+1, "total", len(cat.Books),
			"title", book.Title, "author", book.Author)

		records = append(records, p.processBook(cat, folder, book))

		if p.opts.Pause > 0 {
			time.Sleep(p.opts.Pause)
		}
	}

	if skipped > 0 {
		p.logger.Info("skipped already-complete books", "count", skipped)
	}
	return records, nil
}

// processBook runs the full per-item sequence and assembles its record.
func (p *Pipeline) processBook(cat *config.Category, folder string, book config.Book) catalog.Record {
	rec := catalog.Record{
		Category:       cat.Name,
		Folder:         cat.Folder,
		Filename:       book.Filename,
		ExpectedTitle:  book.Title,
		ExpectedAuthor: book.Author,
		GutenbergID:    book.GutenbergID,
		Note:           book.Note,
	}

	dl := p.fetcher.Download(book, folder)
	switch {
	case dl.Downloaded:
		p.logger.Info("downloaded", "source", dl.Source, "size_kb", dl.SizeKB)
		rec.DownloadSource = dl.Source
	case dl.Exists:
		p.logger.Info("already on disk", "size_kb", dl.SizeKB)
	case dl.Err != "":
		p.logger.Warn("download failed", "filename", book.Filename, "error", dl.Err)
		rec.DownloadError = dl.Err
	}

	path := filepath.Join(folder, book.Filename)
	info, err := os.Stat(path)
	if err != nil {
		return rec
	}
	rec.FileExists = true
	rec.FileSizeKB = math.Round(float64(info.Size())/1024*10) / 10

	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("failed to read book", "path", path, "error", err)
		return rec
	}

	ins := epub.Inspect(data)

	match := verify.Match(book.Title, book.Author, ins.Metadata)
	rec.ActualTitle = match.ActualTitle
	rec.ActualAuthor = match.ActualAuthor
	rec.TitleMatch = match.TitleMatch
	rec.AuthorMatch = match.AuthorMatch
	if !match.TitleMatch || !match.AuthorMatch {
		p.logger.Warn("metadata mismatch",
			"expected_title", book.Title, "actual_title", ins.Metadata.Title,
			"expected_author", book.Author, "actual_author", ins.Metadata.Author)
	}

	if p.opts.Covers {
		p.writeCoverThumb(data, folder, book.Filename)
	}

	if utf8.RuneCountInString(ins.Text) <= minAnalysisChars {
		p.logger.Warn("no usable text for analysis", "filename", book.Filename)
		return rec
	}

	lang := ins.Metadata.Language
	if lang == "" {
		lang = langid.Detect(ins.Text)
	}
	rec.Language = lang

	score := p.scorer.Score(ins.Text, lang)
	if score.Scored {
		rec.Grade = score.Grade
		rec.Graded = true
		rec.CEFR = score.Band
		p.logger.Info("analyzed",
			"language", lang, "grade", score.Grade, "cefr", score.Band)
	} else {
		p.logger.Warn("difficulty not scored", "reason", score.Reason)
	}

	rec.Themes = themes.Detect(ins.Text, lang, themes.DefaultTopN)

	return rec
}

// writeCoverThumb extracts the cover image, scales it to thumbnail width,
// and saves it next to the book. Failures only log; thumbnails are a
// bonus, not part of the record.
func (p *Pipeline) writeCoverThumb(data []byte, folder, filename string) {
	r, err := epub.NewReader(data)
	if err != nil {
		return
	}
	cover, _, ok := r.Cover()
	if !ok {
		return
	}

	img, err := imaging.Decode(bytes.NewReader(cover))
	if err != nil {
		p.logger.Warn("failed to decode cover", "filename", filename, "error", err)
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	out := filepath.Join(folder, strings.TrimSuffix(filename, filepath.Ext(filename))+"_cover.jpg")
	if err := imaging.Save(thumb, out, imaging.JPEGQuality(85)); err != nil {
		p.logger.Warn("failed to save cover thumbnail", "path", out, "error", err)
	}
}

func (p *Pipeline) writeExports(folder string, records []catalog.Record) error {
	for _, format := range p.opts.Formats {
		switch format {
		case "xlsx":
			data, err := catalog.ExportXLSX(records)
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(folder, "catalog.xlsx"), data, 0644); err != nil {
				return err
			}
		case "parquet":
			f, err := os.Create(filepath.Join(folder, "catalog.parquet"))
			if err != nil {
				return err
			}
			if err := catalog.ExportParquet(f, records); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}
