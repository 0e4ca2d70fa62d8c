package main

import (
	"archive/tar"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/InvoxiPlayGames/stfstool/internal/stfs"
	"github.com/InvoxiPlayGames/stfstool/internal/utils"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
)

type extractStats struct {
	StartTime      time.Time
	EndTime        time.Time
	TotalFiles     int
	ExtractedFiles int
	BytesWritten   int64
	Truncated      int
	Errors         int
}

var archivePath string

var extractCmd = &cobra.Command{
	Use:   "extract <package>",
	Short: "Extract files from a package",
	Long: `Extract walks the package's file table and writes every file out to the
output directory, recreating the directory hierarchy. A subset of files can
be selected with --files.

With --archive the files are streamed into a gzip-compressed tar archive
instead of a directory.

Files whose block chain ends before the declared size are still written, but
flagged as truncated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats := &extractStats{StartTime: time.Now()}

		pkg, err := openPackage(args[0])
		if err != nil {
			return err
		}

		table, err := pkg.FileTable()
		if err != nil {
			return fmt.Errorf("parsing file table: %w", err)
		}

		wanted := make(map[string]bool, len(cfg.Files))
		for _, f := range cfg.Files {
			wanted[f] = true
		}

		var sink extractSink
		if archivePath != "" {
			sink, err = newArchiveSink(archivePath)
		} else {
			sink, err = newDirSink(cfg.Output)
		}
		if err != nil {
			return err
		}
		defer sink.Close()

		progress := utils.NewProgress(len(table), !(noProgress || cfg.LogFormat == "json" || cfg.LogLevel == "debug"))

		for i, entry := range table {
			path, err := pkg.Path(i)
			if err != nil {
				return fmt.Errorf("resolving path of entry %d: %w", i, err)
			}
			progress.Update(i+1, path)

			if entry.IsDirectory || (len(wanted) > 0 && !wanted[path] && !wanted[entry.Name]) {
				continue
			}
			stats.TotalFiles++

			data, err := pkg.Extract(entry)
			switch {
			case errors.Is(err, stfs.ErrTruncatedData):
				slog.Warn("File data truncated", "path", path, "declared_size", entry.Size, "got", len(data))
				stats.Truncated++
			case err != nil:
				slog.Error("Failed to extract file", "path", path, "error", err)
				stats.Errors++
				continue
			}

			if err := sink.WriteFile(path, data); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			stats.ExtractedFiles++
			stats.BytesWritten += int64(len(data))
		}

		progress.Finish()

		if err := sink.Close(); err != nil {
			return fmt.Errorf("finalizing output: %w", err)
		}

		stats.EndTime = time.Now()
		fmt.Printf("Files extracted: %d/%d\n", stats.ExtractedFiles, stats.TotalFiles)
		fmt.Printf("Bytes written: %s\n", utils.Bytes(stats.BytesWritten))
		fmt.Printf("Truncated files: %d\n", stats.Truncated)
		fmt.Printf("Errors: %d\n", stats.Errors)
		fmt.Printf("Duration: %s\n", utils.Duration(stats.EndTime.Sub(stats.StartTime)))
		return nil
	},
}

// extractSink receives extracted files, either as a directory tree or as a
// tar.gz archive.
type extractSink interface {
	WriteFile(path string, data []byte) error
	Close() error
}

type dirSink struct {
	root string
}

func newDirSink(root string) (*dirSink, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &dirSink{root: root}, nil
}

func (s *dirSink) WriteFile(path string, data []byte) error {
	dest := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}

func (s *dirSink) Close() error {
	return nil
}

type archiveSink struct {
	file *os.File
	gzw  *gzip.Writer
	tw   *tar.Writer
}

func newArchiveSink(path string) (*archiveSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}
	gzw := gzip.NewWriter(f)
	return &archiveSink{file: f, gzw: gzw, tw: tar.NewWriter(gzw)}, nil
}

func (s *archiveSink) WriteFile(path string, data []byte) error {
	if err := s.tw.WriteHeader(&tar.Header{
		Name: path,
		Mode: 0644,
		Size: int64(len(data)),
	}); err != nil {
		return err
	}
	_, err := s.tw.Write(data)
	return err
}

func (s *archiveSink) Close() error {
	if s.tw == nil {
		return nil
	}
	terr := s.tw.Close()
	gerr := s.gzw.Close()
	ferr := s.file.Close()
	s.tw = nil

	if terr != nil {
		return terr
	}
	if gerr != nil {
		return gerr
	}
	return ferr
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&archivePath, "archive", "", "write a .tar.gz archive instead of a directory")
}
