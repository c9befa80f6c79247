// Package gui implements the desktop interface: conversion direction, file
// selection, output directory configuration, and per-file conversion
// progress.
package gui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ivanvanderbyl/pdf2md"
)

// Conversion direction labels for the mode radio group.
const (
	modePDFToMD = "PDF -> MD"
	modeMDToPDF = "MD -> PDF"
)

// App is the GUI session. It implements pdf2md.Reporter so the runner can
// push status updates into the widgets.
type App struct {
	fyneApp      fyne.App
	window       fyne.Window
	pdfConverter *pdf2md.Converter
	mdConverter  *pdf2md.MarkdownToPDFConverter

	mode        string
	modeRadio   *widget.RadioGroup
	selection   *pdf2md.Selection
	rows        map[string]*fileRow
	fileList    *fyne.Container
	outputEntry *widget.Entry

	running atomic.Bool
}

// New creates the application window and wires up its controls.
func New(pdfConverter *pdf2md.Converter) *App {
	a := &App{
		fyneApp:      fyneapp.New(),
		pdfConverter: pdfConverter,
		mdConverter:  pdf2md.NewMarkdownToPDFConverter(),
		mode:         modePDFToMD,
		selection:    pdf2md.NewSelection(),
		rows:         make(map[string]*fileRow),
	}

	a.window = a.fyneApp.NewWindow("PDF to Markdown")
	a.window.Resize(fyne.NewSize(780, 520))
	a.window.SetContent(a.buildUI())

	return a
}

// Run shows the window and blocks until the session ends.
func (a *App) Run() {
	a.window.ShowAndRun()
}

func (a *App) buildUI() fyne.CanvasObject {
	a.modeRadio = widget.NewRadioGroup([]string{modePDFToMD, modeMDToPDF}, a.onModeChange)
	a.modeRadio.Horizontal = true
	a.modeRadio.SetSelected(modePDFToMD)

	actions := container.NewHBox(
		a.modeRadio,
		widget.NewButton("Add File…", a.selectSingle),
		widget.NewButton("Add Folder…", a.selectFolder),
		widget.NewButton("Output Folder…", a.selectOutputDir),
		widget.NewButton("Convert", a.startConversion),
	)

	a.outputEntry = widget.NewEntry()
	a.outputEntry.SetPlaceHolder("Output directory (defaults to each file's folder)")
	outputRow := container.NewBorder(nil, nil, widget.NewLabel("Output:"), nil, a.outputEntry)

	a.fileList = container.NewVBox()

	return container.NewBorder(
		container.NewVBox(actions, outputRow),
		nil, nil, nil,
		container.NewVScroll(a.fileList),
	)
}

// modeExt returns the source extension the current mode accepts.
func (a *App) modeExt() string {
	if a.mode == modeMDToPDF {
		return ".md"
	}
	return ".pdf"
}

// activeConverter returns the converter for the current mode.
func (a *App) activeConverter() pdf2md.FileConverter {
	if a.mode == modeMDToPDF {
		return a.mdConverter
	}
	return a.pdfConverter
}

// onModeChange switches the conversion direction. The selected files are
// cleared so the two modes cannot be mixed in one list.
func (a *App) onModeChange(value string) {
	if value == a.mode || value == "" {
		return
	}
	if a.running.Load() {
		dialog.ShowInformation("Busy",
			"A conversion is already in progress.", a.window)
		a.modeRadio.SetSelected(a.mode)
		return
	}

	a.mode = value
	a.selection.Clear()
	a.rows = make(map[string]*fileRow)
	a.fileList.RemoveAll()
	a.fileList.Refresh()
}

// busy reports whether a run is in flight, telling the user when it is.
func (a *App) busy() bool {
	if a.running.Load() {
		dialog.ShowInformation("Busy",
			"A conversion is already in progress.", a.window)
		return true
	}
	return false
}

// selectSingle opens a single-file dialog filtered to the current mode's
// extension.
func (a *App) selectSingle() {
	if a.busy() {
		return
	}
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		a.addSource(rc.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{a.modeExt()}))
	d.Show()
}

// selectFolder adds every matching file found directly inside a chosen
// directory.
func (a *App) selectFolder() {
	if a.busy() {
		return
	}
	dialog.ShowFolderOpen(func(lu fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if lu == nil {
			return
		}

		paths, err := pdf2md.DiscoverFiles(lu.Path(), a.modeExt())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if len(paths) == 0 {
			dialog.ShowInformation("No files found",
				fmt.Sprintf("The chosen folder contains no %s files.", a.modeExt()), a.window)
			return
		}

		for _, p := range paths {
			a.addSource(p)
		}
	}, a.window)
}

func (a *App) selectOutputDir() {
	dialog.ShowFolderOpen(func(lu fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if lu == nil {
			return
		}
		a.outputEntry.SetText(lu.Path())
	}, a.window)
}

// addSource queues a file for conversion and creates its progress row.
// Duplicate selections and files not matching the current mode's extension
// are ignored; files may not be added while a run is in flight. The first
// selection seeds the output directory with the file's own folder.
func (a *App) addSource(path string) {
	if a.running.Load() {
		return
	}
	if !strings.EqualFold(filepath.Ext(path), a.modeExt()) {
		dialog.ShowInformation("Unsupported file",
			fmt.Sprintf("This mode only accepts %s files.", a.modeExt()), a.window)
		return
	}

	job, added := a.selection.Add(path)
	if !added {
		return
	}

	if a.outputEntry.Text == "" {
		a.outputEntry.SetText(filepath.Dir(path))
	}

	row := newFileRow(filepath.Base(path))
	a.rows[job.ID] = row
	a.fileList.Add(row.content)
	a.fileList.Refresh()
}

// startConversion runs all pending jobs on a background goroutine. Only one
// run may be in flight at a time.
func (a *App) startConversion() {
	if a.selection.Len() == 0 {
		dialog.ShowInformation("Nothing to convert",
			"Select at least one file first.", a.window)
		return
	}

	if !a.running.CompareAndSwap(false, true) {
		dialog.ShowInformation("Busy",
			"A conversion is already in progress.", a.window)
		return
	}

	outputDir := a.outputEntry.Text
	runner := pdf2md.NewRunner(a.activeConverter(), a)

	go func() {
		defer a.running.Store(false)
		runner.Run(a.selection, outputDir)
	}()
}

// JobStarted implements pdf2md.Reporter.
func (a *App) JobStarted(job *pdf2md.Job) {
	fyne.Do(func() {
		if row := a.rows[job.ID]; row != nil {
			row.setStatus(pdf2md.StatusRunning)
			row.setProgress(0)
		}
	})
}

// JobProgress implements pdf2md.Reporter.
func (a *App) JobProgress(job *pdf2md.Job, percent int) {
	fyne.Do(func() {
		if row := a.rows[job.ID]; row != nil {
			row.setProgress(percent)
		}
	})
}

// JobFinished implements pdf2md.Reporter.
func (a *App) JobFinished(job *pdf2md.Job) {
	fyne.Do(func() {
		row := a.rows[job.ID]
		if row == nil {
			return
		}
		row.setStatus(job.Status)
		if job.Status == pdf2md.StatusFailed {
			dialog.ShowError(
				fmt.Errorf("%s: %v", filepath.Base(job.SourcePath), job.Err),
				a.window,
			)
		}
	})
}
