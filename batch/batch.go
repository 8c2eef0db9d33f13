package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/cxxdoc/docassoc"
)

// DefaultExtensions are the file extensions picked up when walking
// directories.
var DefaultExtensions = []string{
	".h", ".hh", ".hpp", ".hxx", ".h++", ".ipp", ".tpp", ".inl",
	".c", ".cc", ".cpp", ".cxx", ".c++",
}

// File is the outcome for one source file. Exactly one of Result and Err
// is set.
type File struct {
	Result *docassoc.Result
	// Err is the reason the file was skipped: an error matching
	// [docassoc.ErrScan] or [docassoc.ErrReadInput].
	Err  error
	Path string
}

// Skipped reports whether the file was skipped.
func (f File) Skipped() bool {
	return f.Err != nil
}

// Summary is the outcome of one [Runner.Run].
type Summary struct {
	Files []File
	Stats docassoc.Stats
	RunID uuid.UUID
}

// Skipped returns the files that were skipped.
func (s *Summary) Skipped() []File {
	var out []File

	for _, f := range s.Files {
		if f.Skipped() {
			out = append(out, f)
		}
	}

	return out
}

// Runner analyzes many files in parallel. Every file gets its own
// [docassoc.Engine.Analyze] call, so no resolver state is shared between
// files.
//
// Create instances with [NewRunner] or [Config.NewRunner].
type Runner struct {
	engine     *docassoc.Engine
	log        *slog.Logger
	extensions []string
	workers    int
}

// Option configures a [Runner].
type Option func(*Runner)

// WithLogger sets the logger for per-file progress and skip reports. A nil
// logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithWorkers limits the number of files analyzed at once. Values below 1
// mean one worker.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.workers = max(n, 1)
	}
}

// WithExtensions sets the extensions used by [Runner.Discover]. Extensions
// are matched case-insensitively and must include the leading dot.
func WithExtensions(exts ...string) Option {
	return func(r *Runner) {
		r.extensions = exts
	}
}

// NewRunner creates a new [Runner] around engine.
func NewRunner(engine *docassoc.Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:     engine,
		log:        slog.New(slog.DiscardHandler),
		extensions: DefaultExtensions,
		workers:    1,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Discover expands paths into a sorted, de-duplicated list of files.
// Directories are walked recursively and filtered by extension; files named
// explicitly are always included.
func (r *Runner) Discover(paths []string) ([]string, error) {
	var out []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", docassoc.ErrReadInput, err)
		}

		if !info.IsDir() {
			out = append(out, p)

			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && r.matches(path) {
				out = append(out, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: walking %s: %w", docassoc.ErrReadInput, p, err)
		}
	}

	slices.Sort(out)

	return slices.Compact(out), nil
}

func (r *Runner) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	return slices.ContainsFunc(r.extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// Run analyzes files and returns a [Summary] with one [File] per input, in
// input order. Files that cannot be read or scanned are recorded as
// skipped. Cancellation is checked between files; a file already being
// analyzed runs to completion.
func (r *Runner) Run(ctx context.Context, files []string) (*Summary, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generating run id: %w", err)
	}

	log := r.log.With(slog.String("run", id.String()))
	out := make([]File, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			err := gctx.Err()
			if err != nil {
				return err
			}

			out[i] = r.analyze(log, path)

			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}

	sum := &Summary{RunID: id, Files: out, Stats: docassoc.Stats{Density: 1}}

	for _, f := range out {
		if f.Result != nil {
			sum.Stats = sum.Stats.Add(f.Result.Stats())
		}
	}

	log.Info("analysis complete",
		slog.Int("files", len(out)),
		slog.Int("skipped", len(sum.Skipped())),
		slog.Int("declarations", sum.Stats.Total),
		slog.Float64("density", sum.Stats.Density),
	)

	return sum, nil
}

func (r *Runner) analyze(log *slog.Logger, path string) File {
	log = log.With(slog.String("file", path))

	src, err := os.ReadFile(path) //nolint:gosec // Paths come from the command line.
	if err != nil {
		err = fmt.Errorf("%w: %w", docassoc.ErrReadInput, err)
		log.Warn("skipping file", slog.Any("err", err))

		return File{Path: path, Err: err}
	}

	res, err := r.engine.Analyze(src)
	if err != nil {
		log.Warn("skipping file", slog.Any("err", err))

		return File{Path: path, Err: err}
	}

	stats := res.Stats()
	log.Debug("analyzed file",
		slog.Int("declarations", stats.Total),
		slog.Int("undocumented", stats.Undocumented),
	)

	return File{Path: path, Result: res}
}
