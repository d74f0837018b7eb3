package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/sdejongh/conflictsweep/pkg/models"
)

const progressTemplate = `{{string . "label"}} {{counters . }} dirs {{string . "files"}} {{etime . }}`

// ProgressFormatter shows a live directory counter. It stays silent when
// its stream is a file that is not a terminal, so redirected output is not
// polluted with control sequences.
type ProgressFormatter struct {
	writer  io.Writer
	bar     *pb.ProgressBar
	enabled bool

	directories int
	files       int
	actions     int
	errors      int
}

// NewProgressFormatter creates a new progress formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{}
}

// Start initializes the progress bar; a nil writer means stderr
func (f *ProgressFormatter) Start(writer io.Writer) error {
	if writer == nil {
		writer = os.Stderr
	}
	f.writer = writer

	f.enabled = true
	if file, ok := writer.(*os.File); ok && !term.IsTerminal(int(file.Fd())) {
		f.enabled = false
	}
	if !f.enabled {
		return nil
	}

	f.bar = pb.ProgressBarTemplate(progressTemplate).New(0)
	f.bar.SetWriter(writer)
	f.bar.SetRefreshRate(200 * time.Millisecond)
	f.bar.Set("label", "Sweeping")
	f.bar.Set("files", "0 files")
	f.bar.Start()

	return nil
}

// Progress reports progress during the sweep
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	switch update.Type {
	case "dir_start":
		f.directories++
		if f.bar != nil {
			f.bar.Increment()
		}
	case "file_action":
		f.actions++
	case "dir_error", "file_error":
		f.errors++
	}

	if update.Files > 0 {
		f.files = update.Files
	}
	if f.bar != nil {
		f.bar.Set("files", fmt.Sprintf("%d files, %d actions", f.files, f.actions))
	}

	return nil
}

// Complete stops the progress bar
func (f *ProgressFormatter) Complete(report *models.RunReport) error {
	if f.bar != nil {
		f.bar.SetTotal(int64(f.directories))
		f.bar.Finish()
		f.bar = nil
	}
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

// Enabled reports whether the bar is drawn
func (f *ProgressFormatter) Enabled() bool {
	return f.enabled
}
