package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"

	"github.com/ivanvanderbyl/pdf2md"
)

// runHeadless converts the given files (or every matching file inside the
// given directories) without a GUI, showing an overall progress bar on
// stderr. extractor is only set for the PDF to Markdown direction and is
// used to report each document's page count.
func runHeadless(converter pdf2md.FileConverter, extractor *pdf2md.PdfiumExtractor, args []string, outputDir, ext string) error {
	if len(args) == 0 {
		return errors.Errorf("headless mode requires at least one %s file or directory argument", ext)
	}

	selection := pdf2md.NewSelection()
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return errors.Wrapf(err, "cannot access %s", arg)
		}
		if info.IsDir() {
			paths, err := pdf2md.DiscoverFiles(arg, ext)
			if err != nil {
				return err
			}
			for _, p := range paths {
				selection.Add(p)
			}
		} else {
			selection.Add(arg)
		}
	}

	if selection.Len() == 0 {
		return errors.Errorf("no %s files to convert", ext)
	}

	reporter := &barReporter{
		extractor: extractor,
		bar: pb.New(selection.Len()).
			SetTemplateString(`{{ bar . " " "━" "━" " " " "}} {{percent .}} {{rtime .}}`).
			SetWriter(os.Stderr).
			Start(),
	}

	runner := pdf2md.NewRunner(converter, reporter)
	result := runner.Run(selection, outputDir)

	reporter.bar.Finish()
	fmt.Fprintf(os.Stderr, "\n%d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())

	if result.HasFailures() {
		return errors.New("one or more files failed to convert")
	}
	return nil
}

// barReporter drives the overall progress bar and prints a status line per
// file.
type barReporter struct {
	extractor *pdf2md.PdfiumExtractor
	bar       *pb.ProgressBar
}

func (r *barReporter) JobStarted(job *pdf2md.Job) {
	if r.extractor == nil {
		return
	}
	if info, err := r.extractor.GetDocumentInfo(job.SourcePath); err == nil {
		fmt.Fprintf(os.Stderr, "converting: %s (%d pages)\n",
			filepath.Base(job.SourcePath), info.PageCount)
	}
}

func (r *barReporter) JobProgress(*pdf2md.Job, int) {}

func (r *barReporter) JobFinished(job *pdf2md.Job) {
	r.bar.Increment()
	base := filepath.Base(job.SourcePath)
	if job.Status == pdf2md.StatusFailed {
		fmt.Fprintf(os.Stderr, "failed:    %s (%v)\n", base, job.Err)
	} else {
		fmt.Fprintf(os.Stderr, "converted: %s -> %s\n", base, job.OutputPath)
	}
}
