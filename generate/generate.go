// Package generate turns description files into TypeScript modules on disk.
package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/classgen/compat"
	"github.com/teranos/classgen/config"
	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/logger"
	"github.com/teranos/classgen/schema"
)

// Status is the outcome for one module
type Status string

const (
	StatusWritten   Status = "written"    // generate: file created or changed
	StatusUnchanged Status = "unchanged"  // generate: file already matched
	StatusUpToDate  Status = "up_to_date" // check: file matches
	StatusStale     Status = "stale"      // check: file differs
	StatusMissing   Status = "missing"    // check: file does not exist
)

// Result reports one module
type Result struct {
	Module     string   `json:"module"`
	Source     string   `json:"source"`
	Output     string   `json:"output"`
	Classes    []string `json:"classes,omitempty"`
	Status     Status   `json:"status"`
	DurationMS int64    `json:"duration_ms"`
}

// Summary reports a generate or check run
type Summary struct {
	Results   []Result `json:"results"`
	Formatter string   `json:"formatter,omitempty"`
}

// Count returns how many results have status s
func (s Summary) Count(st Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == st {
			n++
		}
	}
	return n
}

// Drifted returns the results whose file on disk is stale or missing
func (s Summary) Drifted() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusStale || r.Status == StatusMissing {
			out = append(out, r)
		}
	}
	return out
}

// Runner generates modules for one project
type Runner struct {
	cfg    *config.Config
	root   string
	format *formatter
	log    *zap.SugaredLogger

	verbosity int
}

// New returns a runner for cfg. Relative paths in cfg resolve against root.
func New(cfg *config.Config, root string) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	f, err := newFormatter(cfg.Format.Command)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:    cfg,
		root:   root,
		format: f,
		log:    logger.ComponentLogger("generate"),
	}, nil
}

// SetVerbosity sets the -v count; at trace verbosity rendered sources are logged
func (r *Runner) SetVerbosity(v int) {
	r.verbosity = v
}

func (r *Runner) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.root, p)
}

// OutputDir is the directory modules are written to
func (r *Runner) OutputDir() string {
	return r.resolve(r.cfg.Output.Dir)
}

// Sources returns paths, or the configured source directory when none are given
func (r *Runner) Sources(paths []string) []string {
	if len(paths) > 0 {
		return paths
	}
	return []string{r.resolve(r.cfg.Generate.Source)}
}

// rendered is a module in memory, ready to write or compare
type rendered struct {
	desc    Description
	output  string
	classes []string
	content []byte
	elapsed time.Duration
}

func (m rendered) result(st Status) Result {
	return Result{
		Module:     m.desc.Module,
		Source:     m.desc.Path,
		Output:     m.output,
		Classes:    m.classes,
		Status:     st,
		DurationMS: m.elapsed.Milliseconds(),
	}
}

// Generate renders every description under paths and writes the modules
// that changed. The formatter, if configured, runs once over the written
// files.
func (r *Runner) Generate(ctx context.Context, paths []string) (Summary, error) {
	modules, err := r.renderAll(ctx, paths)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Results: make([]Result, len(modules))}
	if r.format != nil {
		summary.Formatter = r.format.String()
	}

	type previous struct {
		content []byte
		exists  bool
	}
	before := make([]previous, len(modules))
	var written []string
	for i, m := range modules {
		data, err := os.ReadFile(m.output)
		before[i] = previous{content: data, exists: err == nil}
		if r.format == nil && before[i].exists && bytes.Equal(data, m.content) {
			summary.Results[i] = m.result(StatusUnchanged)
			continue
		}
		if err := writeModule(m.output, m.content); err != nil {
			return summary, err
		}
		written = append(written, m.output)
		summary.Results[i] = m.result(StatusWritten)
	}

	if r.format != nil && len(written) > 0 {
		r.log.Debugw("Running formatter", logger.FieldOperation, r.format.String(), logger.FieldCount, len(written))
		if err := r.format.Run(ctx, r.root, written); err != nil {
			return summary, err
		}
		for i, m := range modules {
			final, err := os.ReadFile(m.output)
			if err != nil {
				return summary, errors.Wrapf(err, "failed to read formatted %s", m.output)
			}
			if before[i].exists && bytes.Equal(before[i].content, final) {
				summary.Results[i].Status = StatusUnchanged
			}
		}
	}

	for _, res := range summary.Results {
		r.log.Infow("Generated module",
			logger.FieldModule, res.Module,
			logger.FieldCount, len(res.Classes),
			logger.FieldDurationMS, res.DurationMS,
			logger.FieldStatus, string(res.Status),
			logger.FieldPath, res.Output,
		)
	}
	return summary, nil
}

// Check renders every description under paths and compares the result with
// the files on disk. Nothing in the output directory is modified.
func (r *Runner) Check(ctx context.Context, paths []string) (Summary, error) {
	modules, err := r.renderAll(ctx, paths)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Results: make([]Result, len(modules))}
	if r.format != nil {
		summary.Formatter = r.format.String()
		if err := r.formatInStaging(ctx, modules); err != nil {
			return Summary{}, err
		}
	}

	for i, m := range modules {
		data, err := os.ReadFile(m.output)
		switch {
		case os.IsNotExist(err):
			summary.Results[i] = m.result(StatusMissing)
		case err != nil:
			return Summary{}, errors.Wrapf(err, "failed to read %s", m.output)
		case bytes.Equal(data, m.content):
			summary.Results[i] = m.result(StatusUpToDate)
		default:
			summary.Results[i] = m.result(StatusStale)
		}
		r.log.Debugw("Checked module",
			logger.FieldModule, m.desc.Module,
			logger.FieldStatus, string(summary.Results[i].Status),
			logger.FieldPath, m.output,
		)
	}
	return summary, nil
}

// formatInStaging writes the modules to a scratch directory next to the
// output, formats them there and replaces their content with the result.
// Staying inside the project keeps the formatter's own config in effect.
func (r *Runner) formatInStaging(ctx context.Context, modules []rendered) error {
	parent := r.OutputDir()
	if _, err := os.Stat(parent); err != nil {
		parent = ""
	}
	stage, err := os.MkdirTemp(parent, ".classgen-check-*")
	if err != nil {
		return errors.Wrap(err, "failed to create staging directory")
	}
	defer os.RemoveAll(stage)

	staged := make([]string, len(modules))
	for i, m := range modules {
		rel, err := filepath.Rel(r.OutputDir(), m.output)
		if err != nil {
			return errors.Wrapf(err, "failed to stage %s", m.output)
		}
		staged[i] = filepath.Join(stage, rel)
		if err := writeModule(staged[i], m.content); err != nil {
			return err
		}
	}
	if err := r.format.Run(ctx, r.root, staged); err != nil {
		return err
	}
	for i := range modules {
		data, err := os.ReadFile(staged[i])
		if err != nil {
			return errors.Wrapf(err, "failed to read formatted %s", staged[i])
		}
		modules[i].content = data
	}
	return nil
}

// renderAll discovers and renders descriptions in parallel, bounded by
// generate.jobs. The first failure cancels the rest.
func (r *Runner) renderAll(ctx context.Context, paths []string) ([]rendered, error) {
	descs, err := Discover(ctx, r.Sources(paths), r.cfg.Generate.Include)
	if err != nil {
		return nil, err
	}
	if len(descs) == 0 {
		r.log.Warnw("No descriptions found", logger.FieldPath, strings.Join(r.Sources(paths), ", "))
		return nil, nil
	}
	for _, d := range descs {
		r.log.Debugw("Discovered description", logger.FieldModule, d.Module, logger.FieldFile, d.Path)
	}

	jobs := r.cfg.Generate.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one index
	modules := make([]rendered, len(descs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(descs)))
	for i, d := range descs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := r.render(d)
			if err != nil {
				return err
			}
			modules[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outputs := make(map[string]string, len(modules))
	for _, m := range modules {
		if prev, ok := outputs[m.output]; ok {
			return nil, errors.NewConflictError("%s and %s both render to %s", prev, m.desc.Path, m.output)
		}
		outputs[m.output] = m.desc.Path
	}
	return modules, nil
}

// render decodes, builds, gates and renders one description
func (r *Runner) render(d Description) (rendered, error) {
	start := time.Now()

	desc, err := schema.Load(d.Path)
	if err != nil {
		return rendered{}, err
	}
	file, err := desc.Build(schema.Options{
		Module:  d.Module,
		Header:  r.cfg.Output.Header,
		Indent:  r.cfg.Output.Indent,
		Promote: r.cfg.Generate.PromoteConstructorProperties,
	})
	if err != nil {
		return rendered{}, errors.Wrapf(err, "%s", d.Path)
	}
	if err := compat.CheckFile(file, r.cfg.Generate.Target); err != nil {
		return rendered{}, errors.Wrapf(err, "%s", d.Path)
	}

	output := filepath.Join(r.OutputDir(), filepath.FromSlash(file.Module())+r.cfg.Output.Extension)
	if rel, err := filepath.Rel(r.OutputDir(), output); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return rendered{}, errors.WithHint(
			errors.Mark(errors.Newf("%s: module %s escapes the output directory", d.Path, file.Module()), errors.ErrInvalidDescription),
			"module paths are relative to output.dir and cannot contain ..",
		)
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return rendered{}, errors.Wrapf(err, "%s", d.Path)
	}

	var classes []string
	for _, c := range file.Classes() {
		classes = append(classes, c.Name())
	}
	m := rendered{
		desc:    Description{Path: d.Path, Module: file.Module()},
		output:  output,
		classes: classes,
		content: buf.Bytes(),
		elapsed: time.Since(start),
	}
	if logger.ShouldOutput(r.verbosity, logger.OutputSource) {
		r.log.Debugw("Rendered module", logger.FieldModule, m.desc.Module, "source", string(m.content))
	}
	return m, nil
}

func writeModule(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
