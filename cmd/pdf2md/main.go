package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/ivanvanderbyl/pdf2md"
	"github.com/ivanvanderbyl/pdf2md/internal/gui"
)

func main() {
	cmd := &cli.Command{
		Name:  "pdf2md",
		Usage: "Convert PDF files to Markdown",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "headless",
				Usage: "Run without a GUI, converting the files or directories given as arguments",
			},
			&cli.BoolFlag{
				Name:  "md2pdf",
				Usage: "Convert Markdown files to PDF instead of PDF to Markdown (implies --headless)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: next to each source file)",
			},
			&cli.BoolFlag{
				Name:  "page-breaks",
				Usage: "Insert a horizontal rule between pages",
			},
			&cli.BoolFlag{
				Name:  "no-title",
				Usage: "Do not write the source file name as an H1 heading",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	// The reverse direction needs no pdfium at all.
	if cmd.Bool("md2pdf") {
		return runHeadless(
			pdf2md.NewMarkdownToPDFConverter(), nil,
			cmd.Args().Slice(), cmd.String("output"), ".md",
		)
	}

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	config := pdf2md.Config{
		IncludeTitle:      !cmd.Bool("no-title"),
		IncludePageBreaks: cmd.Bool("page-breaks"),
	}
	extractor := pdf2md.NewPdfiumExtractor(instance)
	converter := pdf2md.NewConverterWithConfig(extractor, config)

	if cmd.Bool("headless") {
		return runHeadless(converter, extractor, cmd.Args().Slice(), cmd.String("output"), ".pdf")
	}

	app := gui.New(converter)
	app.Run()
	return nil
}
