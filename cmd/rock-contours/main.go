package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sfomuseum/go-flags/flagset"

	"github.com/ironsheep/rock-contours/internal/detection"
	"github.com/ironsheep/rock-contours/internal/logger"
	"github.com/ironsheep/rock-contours/internal/pipeline"
	"github.com/ironsheep/rock-contours/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// envPrefix namespaces environment fallbacks, e.g. ROCK_CONTOURS_LOG_LEVEL.
const envPrefix = "ROCK_CONTOURS"

// Exit codes.
const (
	exitOK    = 0
	exitInput = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	input      string
	output     string
	lower      string
	upper      string
	kernel     int
	saveMask   bool
	logLevel   string
	pretty     bool
}

func run(args []string, stdout, stderr io.Writer) int {
	serve := false
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "rock-contours %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(stdout, "  Contour backend: %s\n", detection.Backend)
			return exitOK
		case "--help", "-h", "help":
			printHelp(stdout)
			return exitOK
		case "serve":
			serve = true
			args = args[1:]
		}
	}

	var opts options
	fs := flagset.NewFlagSet("rock-contours")
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&opts.input, "input", "", "Input image (may also be given as the first argument)")
	fs.StringVar(&opts.output, "output", "", "Output directory (default game_output)")
	fs.StringVar(&opts.lower, "lower", "", "Lower HSV bound as h,s,v (default 10,30,50)")
	fs.StringVar(&opts.upper, "upper", "", "Upper HSV bound as h,s,v (default 30,100,150)")
	fs.IntVar(&opts.kernel, "kernel", 0, "Odd closing kernel size (default 5)")
	fs.BoolVar(&opts.saveMask, "save-mask", false, "Also write the refined mask as rock_mask.png")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.BoolVar(&opts.pretty, "pretty", false, "Human-readable log output")

	// Environment first so that explicit flags win.
	if err := flagset.SetFlagsFromEnvVars(fs, envPrefix); err != nil {
		fmt.Fprintf(stderr, "invalid environment: %v\n", err)
		return exitUsage
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	log := logger.New(stderr, logger.ParseLevel(opts.logLevel), opts.pretty)

	cfg, err := buildConfig(fs, opts)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitUsage
	}

	if serve {
		server.Version = Version
		log.Info().Str("version", Version).Str("backend", detection.Backend).Msg("serving MCP on stdio")
		if err := server.New(cfg, log).Run(); err != nil {
			log.Error().Err(err).Msg("server error")
			return exitInput
		}
		return exitOK
	}

	input := opts.input
	if input == "" {
		input = fs.Arg(0)
	}
	if input == "" {
		fmt.Fprintln(stderr, "no input image given; see rock-contours --help")
		return exitUsage
	}

	p, err := pipeline.New(cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitUsage
	}

	report, err := p.Run(input)
	if err != nil {
		// InputError, or the output directory could not be created.
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitInput
	}

	printSummary(stdout, report)
	return exitOK
}

// buildConfig layers defaults, the optional config file and any flags that
// were set (on the command line or through the environment).
func buildConfig(fs *flag.FlagSet, opts options) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := pipeline.LoadConfig(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "output":
			cfg.OutputDirectory = opts.output
		case "lower":
			cfg.RockColorLowerBound, err = pipeline.ParseHSV(opts.lower)
		case "upper":
			cfg.RockColorUpperBound, err = pipeline.ParseHSV(opts.upper)
		case "kernel":
			cfg.KernelSize = opts.kernel
		case "save-mask":
			cfg.SaveMask = opts.saveMask
		}
	})
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func printSummary(w io.Writer, r *pipeline.Report) {
	fmt.Fprintf(w, "image size %dx%d\n", r.Width, r.Height)
	fmt.Fprintf(w, "contours: %d, polygons: %d\n", r.ContourCount, r.PolygonCount)
	if r.Empty {
		fmt.Fprintln(w, "no rock regions found")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range r.Artifacts {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", a.Artifact, a.Status, a.Path)
		if a.Error != "" {
			fmt.Fprintf(tw, "  \t\t%s\n", a.Error)
		}
	}
	tw.Flush()
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "rock-contours - extract rock outlines from a map image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  rock-contours [options] <image>    Run the pipeline on one image")
	fmt.Fprintln(w, "  rock-contours serve [options]      Serve MCP tools over stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -config path      YAML config file")
	fmt.Fprintln(w, "  -input path       Input image")
	fmt.Fprintln(w, "  -output dir       Output directory (default game_output)")
	fmt.Fprintln(w, "  -lower h,s,v      Lower HSV bound (default 10,30,50)")
	fmt.Fprintln(w, "  -upper h,s,v      Upper HSV bound (default 30,100,150)")
	fmt.Fprintln(w, "  -kernel n         Odd closing kernel size (default 5)")
	fmt.Fprintln(w, "  -save-mask        Also write rock_mask.png")
	fmt.Fprintln(w, "  -log-level level  debug, info, warn or error (default info)")
	fmt.Fprintln(w, "  -pretty           Human-readable logs")
	fmt.Fprintln(w, "  --version, -v     Print version information")
	fmt.Fprintln(w, "  --help, -h        Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every option can also be set through the environment, e.g.")
	fmt.Fprintln(w, "ROCK_CONTOURS_OUTPUT=out or ROCK_CONTOURS_LOG_LEVEL=debug.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 1 when the input cannot be loaded and 2 for usage or")
	fmt.Fprintln(w, "configuration errors. Failed artifacts are reported but do not change it.")
}
