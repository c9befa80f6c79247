package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ivanvanderbyl/pdf2md"
)

// fileRow is one line in the file list: name, progress bar, percent label,
// status label.
type fileRow struct {
	content fyne.CanvasObject
	bar     *widget.ProgressBar
	percent *widget.Label
	status  *widget.Label
}

func newFileRow(name string) *fileRow {
	nameLabel := widget.NewLabel(name)
	nameLabel.Truncation = fyne.TextTruncateEllipsis

	row := &fileRow{
		bar:     widget.NewProgressBar(),
		percent: widget.NewLabel("0%"),
		status:  widget.NewLabel(pdf2md.StatusPending.String()),
	}
	row.bar.TextFormatter = func() string { return "" }
	row.content = container.NewBorder(nil, nil, nameLabel,
		container.NewHBox(row.percent, row.status), row.bar)
	return row
}

func (r *fileRow) setProgress(percent int) {
	r.bar.SetValue(float64(percent) / 100)
	r.percent.SetText(fmt.Sprintf("%d%%", percent))
}

func (r *fileRow) setStatus(status pdf2md.Status) {
	r.status.SetText(status.String())
}
