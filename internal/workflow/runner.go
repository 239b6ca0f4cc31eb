// Package workflow runs the variant calling workflow: FASTA conversion, then one alignment and one variant calling
// pipeline per sample.
package workflow

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-varcall/internal/config"
	"github.com/askiada/go-varcall/internal/fasta"
	"github.com/askiada/go-varcall/internal/logger"
	"github.com/askiada/go-varcall/internal/workspace"
	"github.com/askiada/go-varcall/pkg/pipeline"
	"github.com/askiada/go-varcall/pkg/pipeline/drawer"
	"github.com/askiada/go-varcall/pkg/pipeline/measure"
	"github.com/askiada/go-varcall/pkg/pipeline/model"
)

// ErrReferenceMissing is returned by Run when the reference genome FASTA does not exist.
var ErrReferenceMissing = errors.New("reference genome not found")

// Runner drives the workflow for one configuration.
type Runner struct {
	cfg     config.Config
	log     *slog.Logger
	tracer  pipeline.Tracer
	jobs    int
	drawDir string
}

// Option configures a Runner.
type Option func(r *Runner)

// WithLogger sets the logger. Logs are discarded by default.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithTracer sets the tracer printing every command line before it runs.
func WithTracer(tracer pipeline.Tracer) Option {
	return func(r *Runner) {
		r.tracer = tracer
	}
}

// WithJobs sets how many samples are processed at the same time. Values below 1 mean 1.
func WithJobs(jobs int) Option {
	return func(r *Runner) {
		r.jobs = jobs
	}
}

// WithDrawDir writes a DOT graph of every pipeline, with step durations, into dir.
func WithDrawDir(dir string) Option {
	return func(r *Runner) {
		r.drawDir = dir
	}
}

// NewRunner creates a runner processing one sample at a time.
func NewRunner(cfg config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		log:    logger.Discard(),
		tracer: pipeline.NewConsoleTracer(os.Stdout),
		jobs:   1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.jobs < 1 {
		r.jobs = 1
	}

	return r
}

// Execute prepares the workspace, converts the sequences to FASTA and runs every sample.
// Every log line of the run carries the same run_id.
func (r *Runner) Execute(ctx context.Context) error {
	run := *r
	run.log = r.log.With("run_id", uuid.NewString())
	start := time.Now()

	err := run.Convert(ctx)
	if err != nil {
		return err
	}

	err = run.Run(ctx)
	if err != nil {
		return err
	}

	run.log.Info("run.done", "duration", time.Since(start))

	return nil
}

// Convert prepares the workspace and writes the FASTA files.
func (r *Runner) Convert(ctx context.Context) error {
	err := workspace.Prepare(r.cfg)
	if err != nil {
		return errors.Wrap(err, "unable to prepare workspace")
	}

	written, err := fasta.ConvertFolder(ctx, r.cfg.GenesFolder, r.cfg.FastaFolder)
	if err != nil {
		return errors.Wrap(err, "unable to convert sequences")
	}

	r.log.Info("fasta.converted", "files", len(written), "folder", r.cfg.FastaFolder)

	return nil
}

// Run processes every sample found in the FASTA folder and stops on the first failure.
func (r *Runner) Run(ctx context.Context) error {
	_, err := os.Stat(r.cfg.ReferencePath())
	if err != nil {
		return errors.Wrapf(ErrReferenceMissing, "%s: %v", r.cfg.ReferencePath(), err)
	}

	samples, err := DiscoverSamples(r.cfg)
	if err != nil {
		return err
	}

	if r.drawDir != "" {
		err := os.MkdirAll(r.drawDir, 0o755)
		if err != nil {
			return errors.Wrapf(err, "unable to create %s", r.drawDir)
		}
	}

	r.log.Info("run.start", "samples", len(samples), "jobs", r.jobs, "reference", r.cfg.ReferencePath())

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(r.jobs)

	for _, sample := range samples {
		errGrp.Go(func() error {
			return r.RunSample(dCtx, sample)
		})
	}

	return errGrp.Wait()
}

// RunSample aligns the sample then calls its variants.
func (r *Runner) RunSample(ctx context.Context, s Sample) error {
	log := r.log.With("sample", s.Name)
	start := time.Now()

	log.Info("sample.start")

	alignment, err := r.AlignmentPipeline(s)
	if err != nil {
		return errors.Wrapf(err, "sample %s", s.Name)
	}

	_, err = alignment.Pipe(ctx, pipeline.Unit())
	if err != nil {
		log.Error("sample.alignment_failed", "error", err)

		return errors.Wrapf(err, "sample %s: alignment", s.Name)
	}

	calling, err := r.VariantCallingPipeline(s)
	if err != nil {
		return errors.Wrapf(err, "sample %s", s.Name)
	}

	_, err = calling.Pipe(ctx, pipeline.Unit())
	if err != nil {
		log.Error("sample.variant_calling_failed", "error", err)

		return errors.Wrapf(err, "sample %s: variant calling", s.Name)
	}

	log.Info("sample.done", "duration", time.Since(start))

	return nil
}

func (r *Runner) pipelineOptions(s Sample, name string) []model.PipelineOption {
	opts := []model.PipelineOption{
		&stepLogger{log: r.log.With("sample", s.Name, "pipeline", name)},
	}

	if r.drawDir != "" {
		msr := measure.NewDefaultMeasure()
		fileName := filepath.Join(r.drawDir, s.Name+"-"+name+".dot")
		opts = append(opts,
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(fileName), msr),
		)
	}

	return opts
}
