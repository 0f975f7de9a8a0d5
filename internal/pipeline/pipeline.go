// Package pipeline sequences crop detection, HDR metadata probing, and the
// final encode into one run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hdrpress/internal/config"
	"hdrpress/internal/deps"
	"hdrpress/internal/encodeplan"
	"hdrpress/internal/history"
	"hdrpress/internal/logging"
	"hdrpress/internal/media/cropdetect"
	"hdrpress/internal/media/hdr10"
	"hdrpress/internal/media/runner"
)

// OutputSuffix is appended to the input stem when no output path is given.
const OutputSuffix = ".x265.mkv"

// Request describes one encode run.
type Request struct {
	Input        string
	Output       string
	ScanDuration int
	Settings     encodeplan.Settings
	// CropProgress receives crop-scan progress events. Side channel only.
	CropProgress func(cropdetect.Progress)
}

// Result is the outcome of a successful run.
type Result struct {
	RunID      string
	OutputPath string
	Crop       cropdetect.Box
	Metadata   *hdr10.FrameMetadata
	Display    hdr10.MasteringDisplay
	Light      hdr10.ContentLightLevel
	Params     string
	Duration   time.Duration
}

// Pipeline owns the wiring for encode runs.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *history.Store
}

// New constructs a pipeline. store may be nil to skip history recording.
func New(cfg *config.Config, logger *slog.Logger, store *history.Store) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger, store: store}
}

// DefaultOutputPath derives the output location from the input path.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + OutputSuffix
}

// Run executes the full pipeline. Validation, binary resolution, and
// metadata extraction all happen before the expensive final encode so
// malformed input is rejected cheaply. The encode subprocess's exit status
// is the run's result.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Settings.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(req.Input); err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}

	ffmpeg, err := deps.Resolve("ffmpeg", p.cfg.Tools.FFmpeg)
	if err != nil {
		return nil, err
	}
	ffprobe, err := deps.Resolve("ffprobe", p.cfg.Tools.FFprobe)
	if err != nil {
		return nil, err
	}

	output := strings.TrimSpace(req.Output)
	if output == "" {
		output = DefaultOutputPath(req.Input)
	}

	runID := uuid.NewString()
	logger := p.logger.With(logging.String("run_id", runID), logging.String("input", req.Input))
	started := time.Now()

	// Crop scan and metadata probe are independent; run them in parallel.
	var (
		crop cropdetect.Box
		meta *hdr10.FrameMetadata
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		detector := &cropdetect.Detector{
			FFmpeg:       ffmpeg,
			ScanDuration: req.ScanDuration,
			HWAccel:      req.Settings.HWAccel,
		}
		box, err := detector.Detect(groupCtx, req.Input, req.CropProgress)
		if err != nil {
			return err
		}
		crop = box
		return nil
	})
	group.Go(func() error {
		probe := &hdr10.Probe{FFprobe: ffprobe}
		frame, err := probe.Inspect(groupCtx, req.Input)
		if err != nil {
			return err
		}
		meta = frame
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	logger.Info("analysis complete",
		logging.String("crop", crop.String()),
		logging.String("color_transfer", meta.ColorTransfer),
		logging.String("pix_fmt", meta.PixelFormat))

	displaySD, ok := meta.SideDataContaining(hdr10.MasteringDisplayLabel)
	if !ok {
		return nil, fmt.Errorf("%w: no mastering display side data", hdr10.ErrMetadataMissing)
	}
	lightSD, ok := meta.SideDataContaining(hdr10.ContentLightLabel)
	if !ok {
		return nil, fmt.Errorf("%w: no content light level side data", hdr10.ErrMetadataMissing)
	}
	display, err := hdr10.NormalizeMasteringDisplay(displaySD)
	if err != nil {
		return nil, err
	}
	light, err := hdr10.ParseContentLight(lightSD)
	if err != nil {
		return nil, err
	}

	params := encodeplan.X265Params(meta, display, light)
	args := encodeplan.BuildArgs(req.Input, output, crop, params, req.Settings)

	// One writer per output file. The sidecar lock outlives crashes of
	// other instances but not of the kernel, which is enough here.
	lockPath := output + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("output %s is being written by another run", output)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	logger.Info("starting encode",
		logging.String("output", output),
		logging.Int("quality", req.Settings.Quality),
		logging.String("preset", req.Settings.Preset))

	encodeErr := p.runEncode(ctx, logger, ffmpeg, args)
	finished := time.Now()

	record := history.Run{
		RunID:      runID,
		InputPath:  req.Input,
		OutputPath: output,
		Crop:       crop.String(),
		Quality:    req.Settings.Quality,
		Preset:     req.Settings.Preset,
		Tune:       string(req.Settings.Tune),
		Params:     params,
		Status:     history.StatusCompleted,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if encodeErr != nil {
		record.Status = history.StatusFailed
		record.Error = encodeErr.Error()
		// Partial output is left in place for inspection; a later
		// successful run overwrites it.
		logger.Warn("encode failed, partial output left in place",
			logging.String("output", output), logging.Error(encodeErr))
	}
	p.record(ctx, logger, record)

	if encodeErr != nil {
		return nil, encodeErr
	}

	logger.Info("encode complete",
		logging.String("output", output),
		logging.Duration("duration", finished.Sub(started)))

	return &Result{
		RunID:      runID,
		OutputPath: output,
		Crop:       crop,
		Metadata:   meta,
		Display:    display,
		Light:      light,
		Params:     params,
		Duration:   finished.Sub(started),
	}, nil
}

func (p *Pipeline) runEncode(ctx context.Context, logger *slog.Logger, ffmpeg string, args []string) error {
	proc, err := runner.Start(ctx, ffmpeg, args...)
	if err != nil {
		return err
	}
	defer proc.Close()

	for proc.Scan() {
		logger.Debug("ffmpeg", logging.String("line", proc.Line()))
	}
	if err := proc.Wait(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, run history.Run) {
	if p.store == nil {
		return
	}
	if err := p.store.Record(ctx, run); err != nil {
		logger.Warn("record history", logging.Error(err))
	}
}
