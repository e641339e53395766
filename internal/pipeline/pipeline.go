package pipeline

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/rock-contours/internal/detection"
	"github.com/ironsheep/rock-contours/internal/export"
	"github.com/ironsheep/rock-contours/internal/imaging"
)

// Loader reads an image file into RGB pixels.
type Loader func(path string) (*image.NRGBA, error)

// Result carries the intermediate products of one extraction.
type Result struct {
	Image    *image.NRGBA
	Mask     *imaging.Mask // refined mask
	Contours []detection.Contour
	Polygons []detection.Polygon
	Width    int
	Height   int
}

// Report summarizes a completed run.
type Report struct {
	Input           string                  `json:"input"`
	OutputDirectory string                  `json:"output_directory"`
	Width           int                     `json:"width"`
	Height          int                     `json:"height"`
	ContourCount    int                     `json:"contour_count"`
	PolygonCount    int                     `json:"polygon_count"`
	Empty           bool                    `json:"empty"`
	Artifacts       []export.ArtifactResult `json:"artifacts"`
	Polygons        []detection.Polygon     `json:"polygons"`
}

// Artifact returns the result for one artifact, or a zero value when it was
// not attempted.
func (r *Report) Artifact(a export.Artifact) export.ArtifactResult {
	for _, res := range r.Artifacts {
		if res.Artifact == a {
			return res
		}
	}
	return export.ArtifactResult{}
}

// Err joins the errors of every failed artifact, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Artifacts {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Pipeline runs load, segment, refine, extract, build and export for one
// image at a time. A Pipeline holds no per-run state; concurrent runs are
// safe as long as they use different output directories.
type Pipeline struct {
	cfg   Config
	style export.Style
	load  Loader
	log   zerolog.Logger
}

// New validates cfg and returns a Pipeline that loads with imaging.Load.
func New(cfg Config, log zerolog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	style, err := cfg.Style()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Pipeline{
		cfg:   cfg,
		style: style,
		load:  imaging.Load,
		log:   log,
	}, nil
}

// WithLoader replaces the image loader, e.g. with an ImageCache.
func (p *Pipeline) WithLoader(l Loader) *Pipeline {
	p.load = l
	return p
}

// Config returns the validated configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Extract runs segmentation, refinement, contour extraction and polygon
// building on an already loaded image.
func (p *Pipeline) Extract(img *image.NRGBA) (*Result, error) {
	bounds := img.Bounds()
	res := &Result{Image: img, Width: bounds.Dx(), Height: bounds.Dy()}

	start := time.Now()
	raw := imaging.Segment(img, p.cfg.HSVRange())
	p.stage("segment", start).Int("foreground_px", raw.Count()).Msg("rock mask created")

	start = time.Now()
	mask, err := imaging.Close(raw, p.cfg.KernelSize)
	if err != nil {
		p.log.Error().Err(err).Str("stage", "refine").Msg("mask refinement failed")
		return nil, fmt.Errorf("failed to refine mask: %w", err)
	}
	res.Mask = mask
	p.stage("refine", start).Int("kernel", p.cfg.KernelSize).Int("foreground_px", mask.Count()).Msg("mask refined")

	start = time.Now()
	res.Contours = detection.FindContours(mask)
	p.stage("extract", start).Int("contours", len(res.Contours)).Str("backend", detection.Backend).Msg("contours extracted")

	start = time.Now()
	res.Polygons = detection.BuildPolygons(res.Contours)
	p.stage("build", start).Int("polygons", len(res.Polygons)).Msg("polygons built")

	if len(res.Polygons) == 0 {
		p.log.Warn().Str("stage", "build").Msg("no rock regions found")
	}
	return res, nil
}

// Run processes the image at inputPath and writes all artifacts into the
// configured output directory.
//
// The output directory is created first (an existing one is fine). A load
// failure returns an *InputError and nothing is written into the directory.
// Export failures do not fail the run; they are reported per artifact in
// the returned Report.
func (p *Pipeline) Run(inputPath string) (*Report, error) {
	dir := p.cfg.OutputDirectory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	start := time.Now()
	img, err := p.load(inputPath)
	if err != nil {
		p.log.Error().Err(err).Str("stage", "load").Str("path", inputPath).Msg("failed to load image")
		return nil, &InputError{Path: inputPath, Err: err}
	}
	bounds := img.Bounds()
	p.stage("load", start).Str("path", inputPath).
		Msgf("image size %dx%d", bounds.Dx(), bounds.Dy())

	res, err := p.Extract(img)
	if err != nil {
		return nil, err
	}

	exp := export.NewExporter(dir, p.log)
	exp.Style = p.style
	exp.SpatialReference = p.cfg.SpatialReference
	exp.SaveMask = p.cfg.SaveMask

	report := &Report{
		Input:           inputPath,
		OutputDirectory: dir,
		Width:           res.Width,
		Height:          res.Height,
		ContourCount:    len(res.Contours),
		PolygonCount:    len(res.Polygons),
		Empty:           len(res.Polygons) == 0,
		Polygons:        res.Polygons,
	}
	report.Artifacts = exp.ExportAll(export.Input{
		Image:    res.Image,
		Mask:     res.Mask,
		Contours: res.Contours,
		Polygons: res.Polygons,
	})

	if err := report.Err(); err != nil {
		p.log.Warn().Str("stage", "export").Msg("run finished with export failures")
	} else {
		p.log.Info().Str("stage", "export").Msg("run finished")
	}
	return report, nil
}

func (p *Pipeline) stage(name string, start time.Time) *zerolog.Event {
	return p.log.Info().Str("stage", name).Dur("elapsed", time.Since(start))
}
