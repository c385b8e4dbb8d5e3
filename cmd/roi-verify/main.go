package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/form-roi-tools/internal/descriptor"
	"github.com/ironsheep/form-roi-tools/internal/imaging"
	"github.com/ironsheep/form-roi-tools/internal/ocr"
	"github.com/ironsheep/form-roi-tools/internal/verify"
	"github.com/ironsheep/form-roi-tools/internal/window"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type options struct {
	templateID    string
	jsonPath      string
	imagePath     string
	export        bool
	exportFormat  string
	ocr           bool
	language      string
	outputDir     string
	templatesDir  string
	maxWidth      int
	maxHeight     int
	pdfDPI        int
	colorByColumn bool
	highlight     string
	version       bool
}

func parseFlags() *options {
	o := &options{}
	fs := flag.NewFlagSet("roi-verify", flag.ExitOnError)
	fs.StringVar(&o.templateID, "template-id", "", "template id; reads <outputs>/<id>.json and <templates>/<id>.{png,jpg,jpeg}")
	fs.StringVar(&o.jsonPath, "json", "", "descriptor path (required without -template-id)")
	fs.StringVar(&o.imagePath, "img", "", "template image path (required without -template-id)")
	fs.BoolVar(&o.export, "export", false, "enable the 'e' key to save the overlay")
	fs.StringVar(&o.exportFormat, "export-format", "png", "overlay format: "+strings.Join(verify.ExportFormats, ", "))
	fs.BoolVar(&o.ocr, "ocr", false, "enable the 'o' key to OCR the highlighted box")
	fs.StringVar(&o.language, "lang", ocr.DefaultLanguage, "Tesseract language for -ocr")
	fs.StringVar(&o.outputDir, "outputs", descriptor.DefaultOutputDir, "descriptor and overlay directory")
	fs.StringVar(&o.templatesDir, "templates", descriptor.DefaultTemplatesDir, "template image directory")
	fs.IntVar(&o.maxWidth, "max-width", verify.DefaultMaxWidth, "display width cap")
	fs.IntVar(&o.maxHeight, "max-height", verify.DefaultMaxHeight, "display height cap")
	fs.IntVar(&o.pdfDPI, "dpi", 200, "render resolution for PDF templates")
	fs.BoolVar(&o.colorByColumn, "color-columns", false, "colour table cells by column")
	fs.StringVar(&o.highlight, "highlight-color", "", "highlight colour as #RRGGBB (default blue)")
	fs.BoolVar(&o.version, "version", false, "print version information")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "roi-verify - overlay a template descriptor on its image")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Usage: roi-verify -template-id ID [options]")
		fmt.Fprintln(fs.Output(), "       roi-verify -json FILE -img FILE [options]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Environment variables:")
		fmt.Fprintln(fs.Output(), "  ROI_TOOLS_LOG_LEVEL=debug    Enable debug logging")
	}
	fs.Parse(os.Args[1:])
	return o
}

func main() {
	o := parseFlags()
	if o.version {
		fmt.Printf("roi-verify %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("ROI_TOOLS_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("roi-verify v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := run(o, debug); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(o *options, debug bool) error {
	src, err := verify.Resolve(o.templateID, o.jsonPath, o.imagePath, o.outputDir, o.templatesDir)
	if err != nil {
		return err
	}

	d, err := descriptor.Load(src.JSONPath)
	if err != nil {
		return err
	}
	img, err := imaging.Load(src.ImagePath, o.pdfDPI)
	if err != nil {
		return err
	}
	if debug {
		log.Printf("Descriptor %s: %d ROIs for %s", src.JSONPath, len(d.ROIs), d.TemplateID)
		if info, err := imaging.Describe(img, src.ImagePath); err == nil {
			log.Printf("Loaded %s: %dx%d %s, %d bytes", src.ImagePath, info.Width, info.Height, info.Format, info.FileSizeBytes)
		}
	}
	if o.ocr {
		log.Printf("OCR enabled (tesseract %s, language %s)", ocr.Version(), o.language)
	}

	render := verify.RenderOptions{ColorByColumn: o.colorByColumn}
	if o.highlight != "" {
		c, err := imaging.ParseHexColor(o.highlight)
		if err != nil {
			return fmt.Errorf("invalid -highlight-color: %w", err)
		}
		render.HighlightColor = c
	}

	opts := verify.Options{
		Export:       o.export,
		ExportFormat: strings.ToLower(o.exportFormat),
		OutputDir:    o.outputDir,
		OCR:          o.ocr,
		Language:     o.language,
		MaxWidth:     o.maxWidth,
		MaxHeight:    o.maxHeight,
		Render:       render,
	}
	return verify.New(d, img, window.New(), opts, log.Default()).Run()
}
