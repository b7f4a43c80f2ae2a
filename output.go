package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/cbsinteractive/video-search-client/job"
	"github.com/cbsinteractive/video-search-client/search"
	"github.com/cbsinteractive/video-search-client/upload"
)

// consoleSink renders progress as a single rewritten terminal line.
type consoleSink struct {
	mu   sync.Mutex
	out  io.Writer
	info string
}

func newConsoleSink(out io.Writer) *consoleSink {
	return &consoleSink{out: out}
}

func (s *consoleSink) Progress(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r\033[2K%5.1f%%  %s", percent, s.info)
}

func (s *consoleSink) Info(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = message
	fmt.Fprintf(s.out, "\r\033[2K%s", message)
}

func (s *consoleSink) Busy(bool) {}

func (s *consoleSink) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out)
}

var _ upload.StatusSink = (*consoleSink)(nil)

func readFiles(paths []string) ([]upload.File, error) {
	files := make([]upload.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, upload.File{Name: filepath.Base(p), Contents: data})
	}
	return files, nil
}

func imageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/jpeg"
	}
}

func printJobs(out io.Writer, records []job.Record) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VIDEO\tSTATUS\tSTARTED\tEND TIME")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.InputName, r.Status, r.StartTime, r.EndTime)
	}
	w.Flush()
}

func printResults(out io.Writer, results []search.ResultViewModel) {
	if len(results) == 0 {
		fmt.Fprintln(out, "no results")
		return
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s  (score %s)\n", r.VideoName, r.Score)
		if r.HasEndTime {
			fmt.Fprintf(out, "  Start: %s  End: %s  (%.1fs)\n", r.Start, r.End, r.DurationSeconds)
		} else {
			fmt.Fprintf(out, "  Start: %s\n", r.Start)
		}
		fmt.Fprintf(out, "  Public Figures: %s\n", r.PublicFigures)
		fmt.Fprintf(out, "  Private Figures: %s\n", r.PrivateFigures)
		fmt.Fprintf(out, "  Transcript: %s\n", r.Transcript)
		if r.Description != "" {
			fmt.Fprintf(out, "  Description: %s\n", r.Description)
		}
		fmt.Fprintln(out)
	}
}
