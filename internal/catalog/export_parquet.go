package catalog

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// parquetRow is the flat Parquet schema for a catalog record, mirroring
// the CSV columns. Nullable analysis fields are encoded as optional.
type parquetRow struct {
	Category       string   `parquet:"category"`
	Folder         string   `parquet:"folder"`
	Filename       string   `parquet:"filename"`
	ExpectedTitle  string   `parquet:"expected_title"`
	ExpectedAuthor string   `parquet:"expected_author"`
	GutenbergID    int32    `parquet:"gutenberg_id"`
	Note           string   `parquet:"note"`
	FileExists     bool     `parquet:"file_exists"`
	FileSizeKB     float64  `parquet:"file_size_kb"`
	DownloadSource string   `parquet:"download_source"`
	DownloadError  string   `parquet:"download_error"`
	ActualTitle    string   `parquet:"actual_title"`
	ActualAuthor   string   `parquet:"actual_author"`
	TitleMatch     bool     `parquet:"title_match"`
	AuthorMatch    bool     `parquet:"author_match"`
	Language       string   `parquet:"language"`
	GradeLevel     *float64 `parquet:"grade_level,optional"`
	CEFR           string   `parquet:"cefr"`
	Theme1         string   `parquet:"theme_1"`
	Theme2         string   `parquet:"theme_2"`
	Theme3         string   `parquet:"theme_3"`
	Theme4         string   `parquet:"theme_4"`
	Theme5         string   `parquet:"theme_5"`
}

// ExportParquet writes the catalog to w in Parquet format.
func ExportParquet(w io.Writer, records []Record) error {
	rows := make([]parquetRow, 0, len(records))
	for _, r := range records {
		row := parquetRow{
			Category:       r.Category,
			Folder:         r.Folder,
			Filename:       r.Filename,
			ExpectedTitle:  r.ExpectedTitle,
			ExpectedAuthor: r.ExpectedAuthor,
			GutenbergID:    int32(r.GutenbergID),
			Note:           r.Note,
			FileExists:     r.FileExists,
			FileSizeKB:     r.FileSizeKB,
			DownloadSource: r.DownloadSource,
			DownloadError:  r.DownloadError,
			ActualTitle:    r.ActualTitle,
			ActualAuthor:   r.ActualAuthor,
			TitleMatch:     r.TitleMatch,
			AuthorMatch:    r.AuthorMatch,
			Language:       r.Language,
			CEFR:           r.CEFR,
			Theme1:         r.Theme(0),
			Theme2:         r.Theme(1),
			Theme3:         r.Theme(2),
			Theme4:         r.Theme(3),
			Theme5:         r.Theme(4),
		}
		if r.Graded {
			grade := r.Grade
			row.GradeLevel = &grade
		}
		rows = append(rows, row)
	}

	pw := parquet.NewGenericWriter[parquetRow](w)
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
