package batch

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/cxxdoc/docassoc"
)

// Flags holds CLI flag names for batch configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Workers    string
	Extensions string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for batch configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewRunner] to create a [Runner].
type Config struct {
	Flags      Flags
	Extensions []string
	Workers    int
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Workers:    "workers",
		Extensions: "ext",
	}

	return f.NewConfig()
}

// RegisterFlags adds batch flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&c.Workers, c.Flags.Workers, "j", runtime.GOMAXPROCS(0),
		"number of files analyzed in parallel")
	flags.StringSliceVar(&c.Extensions, c.Flags.Extensions, DefaultExtensions,
		"file extensions included when walking directories")
}

// RegisterCompletions registers shell completions for batch flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Workers, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Workers, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Extensions,
		cobra.FixedCompletions(DefaultExtensions, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Extensions, err)
	}

	return nil
}

// NewRunner validates c and creates a new [Runner] around engine.
func (c *Config) NewRunner(engine *docassoc.Engine, logger *slog.Logger) (*Runner, error) {
	if c.Workers < 1 {
		return nil, fmt.Errorf("%w: %s must be at least 1, got %d",
			docassoc.ErrInvalidOption, c.Flags.Workers, c.Workers)
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("%w: extension %q must start with a dot",
				docassoc.ErrInvalidOption, ext)
		}
	}

	return NewRunner(engine,
		WithLogger(logger),
		WithWorkers(c.Workers),
		WithExtensions(c.Extensions...),
	), nil
}
