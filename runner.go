package pdf2md

// Reporter receives job lifecycle updates from the runner. Implementations
// must tolerate being called from the runner's goroutine.
type Reporter interface {
	JobStarted(job *Job)
	JobProgress(job *Job, percent int)
	JobFinished(job *Job)
}

// NopReporter discards all updates.
type NopReporter struct{}

func (NopReporter) JobStarted(*Job)       {}
func (NopReporter) JobProgress(*Job, int) {}
func (NopReporter) JobFinished(*Job)      {}

// Result holds the outcome of a conversion run.
type Result struct {
	Converted int
	Failed    int
}

// Total returns the total number of jobs processed.
func (r Result) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any job failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// FileConverter converts one source file and writes the result into
// outputDir, returning the path of the written file. Converter implements
// it for PDF to Markdown, MarkdownToPDFConverter for the reverse direction.
type FileConverter interface {
	ConvertFile(sourcePath, outputDir string, progress ProgressFunc) (string, error)
}

// Runner processes a selection of jobs strictly sequentially, converting
// each file in selection order and reporting status to a Reporter. A failed
// job never aborts the run; the remaining jobs are still processed.
type Runner struct {
	converter FileConverter
	reporter  Reporter
}

// NewRunner creates a runner. reporter may be nil.
func NewRunner(converter FileConverter, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{
		converter: converter,
		reporter:  reporter,
	}
}

// Run converts every pending job in the selection. outputDir applies to all
// jobs when set; when empty each job writes beside its own source file.
// Jobs already in a terminal state are skipped, not re-run. The run works on
// a snapshot of the selection; jobs added while it is in flight stay pending
// until a later run.
func (r *Runner) Run(selection *Selection, outputDir string) Result {
	var result Result

	for _, job := range selection.Jobs() {
		if job.Status.Terminal() {
			continue
		}

		job.Status = StatusRunning
		r.reporter.JobStarted(job)

		progress := func(page, total int) {
			percent := 100
			if total > 0 {
				percent = page * 100 / total
			}
			if percent > 100 {
				percent = 100
			}
			r.reporter.JobProgress(job, percent)
		}

		outputPath, err := r.converter.ConvertFile(job.SourcePath, job.ResolveOutputDir(outputDir), progress)
		if err != nil {
			job.Status = StatusFailed
			job.Err = err
			result.Failed++
		} else {
			job.Status = StatusDone
			job.OutputPath = outputPath
			r.reporter.JobProgress(job, 100)
			result.Converted++
		}

		r.reporter.JobFinished(job)
	}

	return result
}
