package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Columns is the fixed CSV schema, in order. Loading and writing both go
// through it so incremental runs round-trip records field for field.
var Columns = []string{
	"category", "folder", "filename",
	"expected_title", "expected_author", "gutenberg_id", "note",
	"file_exists", "file_size_kb", "download_source", "download_error",
	"actual_title", "actual_author", "title_match", "author_match",
	"language", "grade_level", "cefr",
	"theme_1", "theme_2", "theme_3", "theme_4", "theme_5",
}

// WriteCSV writes the catalog to path, replacing any previous file.
func WriteCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.row()); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.Filename, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush catalog: %w", err)
	}
	return nil
}

// LoadCSV loads a previous run's catalog keyed by filename. A missing
// file is not an error; it just means nothing was processed yet.
func LoadCSV(path string) (map[string]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Record{}, nil
		}
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Columns)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	cache := make(map[string]Record)
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec := fromRow(row)
		if rec.Filename != "" {
			cache[rec.Filename] = rec
		}
	}
	return cache, nil
}

func (r Record) row() []string {
	grade := ""
	if r.Graded {
		grade = strconv.FormatFloat(r.Grade, 'f', 1, 64)
	}

	row := []string{
		r.Category, r.Folder, r.Filename,
		r.ExpectedTitle, r.ExpectedAuthor, strconv.Itoa(r.GutenbergID), r.Note,
		strconv.FormatBool(r.FileExists),
		strconv.FormatFloat(r.FileSizeKB, 'f', 1, 64),
		r.DownloadSource, r.DownloadError,
		r.ActualTitle, r.ActualAuthor,
		strconv.FormatBool(r.TitleMatch), strconv.FormatBool(r.AuthorMatch),
		r.Language, grade, r.CEFR,
	}
	for i := 0; i < ThemeSlots; i++ {
		row = append(row, r.Theme(i))
	}
	return row
}

func fromRow(row []string) Record {
	rec := Record{
		Category:       row[0],
		Folder:         row[1],
		Filename:       row[2],
		ExpectedTitle:  row[3],
		ExpectedAuthor: row[4],
		Note:           row[6],
		DownloadSource: row[9],
		DownloadError:  row[10],
		ActualTitle:    row[11],
		ActualAuthor:   row[12],
		Language:       row[15],
		CEFR:           row[17],
	}
	rec.GutenbergID, _ = strconv.Atoi(row[5])
	rec.FileExists, _ = strconv.ParseBool(row[7])
	rec.FileSizeKB, _ = strconv.ParseFloat(row[8], 64)
	rec.TitleMatch, _ = strconv.ParseBool(row[13])
	rec.AuthorMatch, _ = strconv.ParseBool(row[14])
	if row[16] != "" {
		rec.Grade, _ = strconv.ParseFloat(row[16], 64)
		rec.Graded = true
	}
	for i := 0; i < ThemeSlots; i++ {
		if theme := row[18+i]; theme != "" {
			rec.Themes = append(rec.Themes, theme)
		}
	}
	return rec
}
