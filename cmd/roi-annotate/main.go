package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/form-roi-tools/internal/annotate"
	"github.com/ironsheep/form-roi-tools/internal/detection"
	"github.com/ironsheep/form-roi-tools/internal/imaging"
	"github.com/ironsheep/form-roi-tools/internal/layout"
	"github.com/ironsheep/form-roi-tools/internal/window"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type options struct {
	config             string
	templateID         string
	image              string
	outputDir          string
	maxWidth           int
	maxHeight          int
	includeLabelColumn bool
	strictGrid         bool
	snapRadius         int
	pdfDPI             int
	dumpConfig         string
	version            bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string) *options {
	o := &options{}
	fs := flag.NewFlagSet("roi-annotate", flag.ExitOnError)
	fs.StringVar(&o.config, "config", "", "YAML layout file (default: built-in base sheet layout)")
	fs.StringVar(&o.templateID, "template-id", "", "override the layout's template id")
	fs.StringVar(&o.image, "img", "", "override the template image path (PNG, JPEG, WebP or PDF)")
	fs.StringVar(&o.outputDir, "out", "", "override the descriptor output directory")
	fs.IntVar(&o.maxWidth, "max-width", 0, "override the display width cap")
	fs.IntVar(&o.maxHeight, "max-height", 0, "override the display height cap")
	fs.BoolVar(&o.includeLabelColumn, "include-label-column", false, "keep column 0 (row labels) as cells")
	fs.BoolVar(&o.strictGrid, "strict-grid", false, "fail when vertical gridlines are missing")
	fs.IntVar(&o.snapRadius, "snap", -1, "snap gridline clicks to printed rules within this many pixels (0 disables)")
	fs.IntVar(&o.pdfDPI, "dpi", 0, "render resolution for PDF templates")
	fs.StringVar(&o.dumpConfig, "dump-config", "", "write the effective layout as YAML to this path and exit")
	fs.BoolVar(&o.version, "version", false, "print version information")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "roi-annotate - draw field boxes and table gridlines on a form template")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Usage: roi-annotate [options]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Environment variables:")
		fmt.Fprintln(fs.Output(), "  ROI_TOOLS_LOG_LEVEL=debug    Enable debug logging")
	}
	fs.Parse(args)

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o
}

// apply copies explicitly set command-line values over the layout.
func (o *options) apply(l *layout.Layout) {
	if o.templateID != "" {
		l.SetTemplateID(o.templateID)
	}
	if o.image != "" {
		l.SetImage(o.image)
	}
	if o.outputDir != "" {
		l.OutputDir = o.outputDir
	}
	if o.maxWidth > 0 {
		l.Display.MaxWidth = o.maxWidth
	}
	if o.maxHeight > 0 {
		l.Display.MaxHeight = o.maxHeight
	}
	if o.set["include-label-column"] {
		l.Table.IncludeLabelColumn = o.includeLabelColumn
	}
	if o.set["strict-grid"] {
		l.Table.StrictGrid = o.strictGrid
	}
	if o.snapRadius >= 0 {
		l.SnapRadius = o.snapRadius
	}
	if o.pdfDPI > 0 {
		l.PDFDPI = o.pdfDPI
	}
}

func main() {
	o := parseFlags(os.Args[1:])
	if o.version {
		fmt.Printf("roi-annotate %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("ROI_TOOLS_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("roi-annotate v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := run(o, debug); err != nil {
		if errors.Is(err, annotate.ErrAborted) {
			log.Printf("Aborted. No descriptor written.")
		} else {
			log.Printf("Error: %v", err)
		}
		os.Exit(1)
	}
}

func run(o *options, debug bool) error {
	l := layout.Default()
	if o.config != "" {
		loaded, err := layout.Load(o.config)
		if err != nil {
			return err
		}
		l = loaded
	}
	o.apply(l)
	if err := l.Validate(); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	if o.dumpConfig != "" {
		if err := l.Save(o.dumpConfig); err != nil {
			return fmt.Errorf("failed to write layout: %w", err)
		}
		log.Printf("Wrote layout -> %s", o.dumpConfig)
		return nil
	}

	img, err := imaging.Load(l.Image, l.PDFDPI)
	if err != nil {
		return err
	}
	if debug {
		if info, err := imaging.Describe(img, l.Image); err == nil {
			log.Printf("Loaded %s: %dx%d %s, %d bytes", l.Image, info.Width, info.Height, info.Format, info.FileSizeBytes)
		}
	}

	a := annotate.New(l, window.New(), log.Default())
	if l.SnapRadius > 0 {
		a.Snapper = detection.NewRuleProfile(img)
	}

	d, err := a.Run(img)
	if err != nil {
		return err
	}

	path := l.OutputPath()
	if err := d.Save(path); err != nil {
		return err
	}
	log.Printf("Saved ROI JSON -> %s (%d fields)", path, len(d.ROIs))
	return nil
}
