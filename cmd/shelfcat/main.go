package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shelfcat/shelfcat/internal/config"
	"github.com/shelfcat/shelfcat/internal/pipeline"
)

// downloadPause throttles requests against the book archives.
const downloadPause = 300 * time.Millisecond

var rootCmd = &cobra.Command{
	Use:   "shelfcat [category]",
	Short: "Build a reading-difficulty catalog from EPUB collections",
	Long: `shelfcat downloads public-domain EPUB books described by per-category
YAML files, verifies their embedded metadata, estimates reading
difficulty on the CEFR scale, and detects dominant themes.

Results are written to a catalog.csv in each category folder. Reruns
skip books whose records are already complete.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional; a missing .env just means no overrides.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		force, _ := cmd.Flags().GetBool("force")
		covers, _ := cmd.Flags().GetBool("covers")
		formats, _ := cmd.Flags().GetStringSlice("format")

		for _, f := range formats {
			if f != "xlsx" && f != "parquet" {
				return fmt.Errorf("unknown export format %q (want xlsx or parquet)", f)
			}
		}

		paths, err := resolveConfigs(dir, args)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		p := pipeline.New(pipeline.Options{
			BaseDir: dir,
			Force:   force,
			Covers:  covers,
			Formats: formats,
			Pause:   downloadPause,
		}, nil, logger)

		sum, err := p.Run(paths)
		if err != nil {
			return err
		}

		fmt.Printf("Processed %d books in %d categories: %d on disk, %d verified, %d analyzed\n",
			sum.Books, len(paths), sum.FilesPresent, sum.Verified, sum.Analyzed)
		return nil
	},
}

// resolveConfigs maps the optional category argument to config paths.
// With no argument, every valid category file in dir is used.
func resolveConfigs(dir string, args []string) ([]string, error) {
	if len(args) == 0 {
		paths, err := config.Discover(dir)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no category files found in %s", dir)
		}
		return paths, nil
	}

	name := args[0]
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		available, _ := config.Discover(dir)
		for i, p := range available {
			available[i] = strings.TrimSuffix(filepath.Base(p), ".yaml")
		}
		if len(available) == 0 {
			return nil, fmt.Errorf("category %s not found and %s has no category files", name, dir)
		}
		return nil, fmt.Errorf("category %s not found, available: %s", name, strings.Join(available, ", "))
	}
	return []string{path}, nil
}

func init() {
	rootCmd.Flags().StringP("dir", "d", "books", "Directory holding category YAML files and book folders")
	rootCmd.Flags().BoolP("force", "f", false, "Reprocess all books, ignoring cached catalog records")
	rootCmd.Flags().Bool("covers", false, "Extract cover thumbnails next to the books")
	rootCmd.Flags().StringSlice("format", nil, "Extra catalog exports (xlsx, parquet)")
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
