// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/configure"
	"go.trai.ch/kiln/internal/engine/dispatcher"
	"go.trai.ch/kiln/internal/engine/generator"
	"go.trai.ch/zerr"
)

// Deps holds the collaborators of App.
type Deps struct {
	Manifests  ports.ManifestLoader
	Graphs     ports.GraphLoader
	Configs    ports.ConfigStore
	BuildInfo  ports.BuildInfoStore
	Hasher     ports.Hasher
	Catalog    ports.TestCatalog
	Executor   ports.Executor
	Presenter  ports.Presenter
	Host       ports.Host
	Tracer     ports.Tracer
	Logger     ports.Logger
	Resolver   *configure.Resolver
	Generator  *generator.Generator
	Dispatcher *dispatcher.Dispatcher
}

// App represents the main application logic.
type App struct {
	Deps
	stdout io.Writer
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{Deps: deps, stdout: os.Stdout}
}

// WithOutput redirects operator-facing output such as reports, trees and usage text.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// ConfigureOptions configuration for the Configure method.
type ConfigureOptions struct {
	Layout domain.Layout
	Args   []string
}

// Configure resolves the configure arguments and writes config.mk and config.json.
// Asking for help prints the option listing and touches nothing.
func (a *App) Configure(ctx context.Context, opts ConfigureOptions) error {
	_, span := a.Tracer.Start(ctx, "configure")
	defer span.End()

	cfg, err := a.Resolver.Resolve(opts.Args, opts.Layout.OutputDir)
	if errors.Is(err, domain.ErrHelpRequested) {
		_, err = io.WriteString(a.stdout, a.Resolver.Usage())
		return err
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	out := opts.Layout.Out()
	unlock, err := a.Configs.Lock(out)
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	if err := a.Configs.Save(out, cfg); err != nil {
		span.RecordError(err)
		return err
	}

	a.Logger.Info(fmt.Sprintf("configured %s %s build in %s", cfg.Target(), cfg.BuildType(), out))
	return unlock()
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	Layout domain.Layout
	// Force regenerates even when the build files are up to date.
	Force bool
}

// Generate writes the native build files unless they are up to date.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) error {
	ctx, span := a.Tracer.Start(ctx, "generate")
	defer span.End()

	unlock, err := a.Configs.Lock(opts.Layout.Out())
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	cfg, err := a.Configs.Load(opts.Layout.Out())
	if err != nil {
		return err
	}
	graph, graphPath, err := a.loadGraph(opts.Layout)
	if err != nil {
		return err
	}
	if err := a.generate(ctx, opts.Layout, cfg, graph, graphPath, opts.Force); err != nil {
		span.RecordError(err)
		return err
	}
	return unlock()
}

// generate renders and writes the build files when their inputs or outputs changed since the last run.
func (a *App) generate(
	ctx context.Context,
	layout domain.Layout,
	cfg *domain.BuildConfiguration,
	graph *domain.TargetGraph,
	graphPath string,
	force bool,
) error {
	_, span := a.Tracer.Start(ctx, "render")
	defer span.End()

	out := layout.Out()
	inputs := []string{filepath.Join(out, domain.ConfigJSONFileName), graphPath}
	outputs := []string{filepath.Join(out, domain.MakefileName), filepath.Join(out, domain.NinjaFileName)}

	inputHash, err := a.Hasher.Fingerprint(inputs)
	if err != nil {
		return err
	}

	if !force {
		info, err := a.BuildInfo.Get(layout.StateDir(), domain.BuildFilesArtifact)
		if err != nil {
			return err
		}
		if info.CoversInput(inputHash) {
			outputHash, err := a.Hasher.Fingerprint(outputs)
			if err != nil {
				return err
			}
			if info.CoversOutput(outputHash) {
				span.SetAttribute("up_to_date", true)
				a.Logger.Debug(generator.DebugArea, "build files are up to date")
				return nil
			}
		}
	}

	files, err := a.Generator.Generate(layout, graph, cfg)
	if err != nil {
		return err
	}
	if err := a.Configs.WriteBuildFiles(out, files); err != nil {
		return err
	}

	outputHash, err := a.Hasher.Fingerprint(outputs)
	if err != nil {
		return err
	}
	if err := a.BuildInfo.Put(layout.StateDir(), domain.BuildInfo{
		Artifact:   domain.BuildFilesArtifact,
		InputHash:  inputHash,
		OutputHash: outputHash,
		Timestamp:  time.Now(),
	}); err != nil {
		return err
	}

	a.Logger.Info(fmt.Sprintf("generated %s and %s in %s", domain.MakefileName, domain.NinjaFileName, out))
	return nil
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Layout domain.Layout
	// Target defaults to the primary target of the graph.
	Target string
	// Jobs is passed to the orchestrator when positive.
	Jobs int
}

// Build regenerates stale build files and runs the native orchestrator for one target.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	ctx, span := a.Tracer.Start(ctx, "build")
	defer span.End()

	out := opts.Layout.Out()
	unlock, err := a.Configs.Lock(out)
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	cfg, err := a.Configs.Load(out)
	if err != nil {
		return err
	}
	graph, graphPath, err := a.loadGraph(opts.Layout)
	if err != nil {
		return err
	}

	target := opts.Target
	if target == "" {
		target = graph.Primary()
	}
	if target == "" {
		return domain.ErrNoPrimaryTarget
	}
	if _, ok := graph.Target(target); !ok {
		return zerr.With(domain.ErrTargetNotFound, "target", target)
	}
	span.SetAttribute("target", target)

	if err := a.generate(ctx, opts.Layout, cfg, graph, graphPath, false); err != nil {
		return err
	}

	cmd := domain.Command{Name: "make"}
	if cfg.UseNinja() {
		cmd.Name = "ninja"
	}
	cmd.Args = []string{"-C", out}
	if opts.Jobs > 0 {
		cmd.Args = append(cmd.Args, "-j", strconv.Itoa(opts.Jobs))
	}
	cmd.Args = append(cmd.Args, target)

	a.Logger.Debug("build", fmt.Sprintf("%s %s", cmd.Name, strings.Join(cmd.Args, " ")))
	if err := a.Executor.Execute(ctx, cmd); err != nil {
		span.RecordError(err)
		return errors.Join(domain.ErrBuildFailed, zerr.With(err, "target", target))
	}
	return unlock()
}

// Clean removes the compiled outputs of both build types and keeps the configuration.
func (a *App) Clean(_ context.Context, layout domain.Layout) error {
	unlock, err := a.Configs.Lock(layout.Out())
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	if err := a.clean(layout); err != nil {
		return err
	}
	return unlock()
}

func (a *App) clean(layout domain.Layout) error {
	var errs error
	for _, bt := range []string{domain.BuildTypeRelease, domain.BuildTypeDebug} {
		errs = errors.Join(errs, a.remove(layout.BuildTypeDir(bt)))
	}
	return errs
}

// Distclean removes everything configure, generate and build produced, then the output
// directory itself when nothing else is left in it.
func (a *App) Distclean(_ context.Context, layout domain.Layout) error {
	out := layout.Out()
	if _, err := os.Stat(out); os.IsNotExist(err) {
		return nil
	}

	unlock, err := a.Configs.Lock(out)
	if err != nil {
		return err
	}

	errs := a.clean(layout)
	for _, f := range layout.GeneratedFiles() {
		errs = errors.Join(errs, a.remove(f))
	}
	if err := a.BuildInfo.Remove(layout.StateDir()); err != nil {
		errs = errors.Join(errs, err)
	}
	errs = errors.Join(errs, unlock())
	if errs != nil {
		return errs
	}

	if entries, err := os.ReadDir(out); err == nil && len(entries) == 0 {
		return a.remove(out)
	}
	return nil
}

func (a *App) remove(path string) error {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove"), "path", path)
	}
	a.Logger.Info("removed " + path)
	return nil
}

// TestOptions configuration for the Test method.
type TestOptions struct {
	Layout domain.Layout
	// Selection names groups or test paths. Empty selects every case.
	Selection []string
	// Mode restricts the run to one execution mode. Empty runs both.
	Mode domain.TestMode
	// Filter keeps cases whose ID contains it.
	Filter string
	// Format is the report format, linear or tap.
	Format string
	// Jobs overrides the manifest and host defaults when positive.
	Jobs int
}

// Test runs the selected cases against the built binary and renders the report.
// It fails with ErrTestsFailed when any case failed, crashed or timed out.
func (a *App) Test(ctx context.Context, opts TestOptions) error {
	manifest, err := a.Manifests.Load(opts.Layout.Root)
	if err != nil {
		return err
	}

	reporter, err := a.Presenter.Reporter(opts.Format, a.stdout)
	if err != nil {
		return zerr.With(err, "format", opts.Format)
	}

	binary, err := a.testBinary(opts.Layout, manifest)
	if err != nil {
		return err
	}

	discovered, err := a.Catalog.Discover(opts.Layout.Root, manifest.Tests)
	if err != nil {
		return err
	}
	selected, err := selectCases(discovered, opts)
	if err != nil {
		return err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = manifest.Tests.Jobs
	}
	if jobs <= 0 {
		jobs = a.Host.NumCPU()
	}

	report, err := a.Dispatcher.Run(ctx, selected, dispatcher.Options{
		Binary:       binary,
		Timeout:      manifest.Tests.Timeout,
		SuiteTimeout: manifest.Tests.SuiteTimeout,
		Jobs:         jobs,
	}, reporter)
	if err != nil {
		return err
	}
	if !report.OK() {
		return domain.ErrTestsFailed
	}
	return nil
}

// testBinary returns the absolute path of the executable the corpus runs against.
func (a *App) testBinary(layout domain.Layout, manifest *domain.Manifest) (string, error) {
	var binary string
	if manifest.Tests.Binary != "" {
		binary = filepath.Join(layout.Root, manifest.Tests.Binary)
	} else {
		cfg, err := a.Configs.Load(layout.Out())
		if err != nil {
			return "", err
		}
		graph, _, err := a.loadGraph(layout)
		if err != nil {
			return "", err
		}
		primary, ok := graph.Target(graph.Primary())
		if !ok || primary.Type != domain.TargetExecutable {
			return "", zerr.With(domain.ErrNoTestBinary, "reason", "no executable primary target declared")
		}
		binary = filepath.Join(layout.BuildTypeDir(cfg.BuildType()), primary.ArtifactName(cfg.String(domain.KeyDestOS)))
	}

	info, err := os.Stat(binary)
	if err != nil || info.IsDir() {
		return "", zerr.With(domain.ErrNoTestBinary, "binary", binary)
	}
	abs, err := filepath.Abs(binary)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrNoTestBinary.Error()), "binary", binary)
	}
	return abs, nil
}

// selectCases narrows the discovered cases by mode, selection and filter, keeping discovery order.
// A selection entry is a group directory, a case ID, or a directory prefix of case IDs.
func selectCases(cases []domain.TestCase, opts TestOptions) ([]domain.TestCase, error) {
	matches := func(tc domain.TestCase, sel string) bool {
		sel = strings.TrimSuffix(filepath.ToSlash(sel), "/")
		return tc.Group == sel || tc.ID == sel || strings.HasPrefix(tc.ID, sel+"/")
	}

	for _, sel := range opts.Selection {
		found := false
		for _, tc := range cases {
			if matches(tc, sel) {
				found = true
				break
			}
		}
		if !found {
			return nil, zerr.With(domain.ErrTestNotFound, "selection", sel)
		}
	}

	var out []domain.TestCase
	for _, tc := range cases {
		if opts.Mode != "" && tc.Mode != opts.Mode {
			continue
		}
		if opts.Filter != "" && !strings.Contains(tc.ID, opts.Filter) {
			continue
		}
		if len(opts.Selection) > 0 {
			selected := false
			for _, sel := range opts.Selection {
				if matches(tc, sel) {
					selected = true
					break
				}
			}
			if !selected {
				continue
			}
		}
		out = append(out, tc)
	}
	return out, nil
}

// GraphOptions configuration for the Graph method.
type GraphOptions struct {
	Layout domain.Layout
	// Target is the root of the printed tree. Empty prints the primary target, or every root.
	Target string
}

// Graph prints the dependency tree of the target graph.
func (a *App) Graph(_ context.Context, opts GraphOptions) error {
	graph, _, err := a.loadGraph(opts.Layout)
	if err != nil {
		return err
	}
	if err := graph.Validate(); err != nil {
		return err
	}
	return a.Presenter.Graph(a.stdout, graph, opts.Target)
}

// loadGraph reads the target graph the manifest points at.
func (a *App) loadGraph(layout domain.Layout) (*domain.TargetGraph, string, error) {
	manifest, err := a.Manifests.Load(layout.Root)
	if err != nil {
		return nil, "", err
	}
	path := filepath.Join(layout.Root, manifest.Graph)
	graph, err := a.Graphs.Load(path)
	if err != nil {
		return nil, "", err
	}
	return graph, path, nil
}
