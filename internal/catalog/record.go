// Package catalog defines the flat per-book record the pipeline produces
// and its persistence: a CSV catalog next to the books (the resumable
// store of record) plus optional XLSX and Parquet exports.
package catalog

// ThemeSlots is the fixed number of theme columns in a record.
const ThemeSlots = 5

// Record is one processed catalog entry. It unions the requested book,
// the download outcome, metadata verification, and analysis results.
type Record struct {
	Category       string
	Folder         string
	Filename       string
	ExpectedTitle  string
	ExpectedAuthor string
	GutenbergID    int
	Note           string

	FileExists     bool
	FileSizeKB     float64
	DownloadSource string
	DownloadError  string

	ActualTitle  string
	ActualAuthor string
	TitleMatch   bool
	AuthorMatch  bool

	Language string
	Grade    float64
	Graded   bool
	CEFR     string
	Themes   []string
}

// Complete reports whether a record is finished for resume purposes: the
// file was confirmed present and a grade level was computed. An empty
// theme list does not block completeness.
func (r Record) Complete() bool {
	return r.FileExists && r.Graded
}

// Theme returns the i-th theme slot (0-based), empty when unset.
func (r Record) Theme(i int) string {
	if i < len(r.Themes) {
		return r.Themes[i]
	}
	return ""
}
