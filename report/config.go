package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/cxxdoc/batch"
	"go.jacobcolvin.com/cxxdoc/docassoc"
)

// Flags holds CLI flag names for report configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Format           string
	Output           string
	Width            string
	UndocumentedOnly string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for report configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewRenderer] to create a [Renderer]
// and [Config.Write] to render a batch summary to the configured output.
type Config struct {
	Flags            Flags
	Format           string
	Output           string
	Width            int
	UndocumentedOnly bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Format:           "format",
		Output:           "output",
		Width:            "width",
		UndocumentedOnly: "undocumented-only",
	}

	return f.NewConfig()
}

// RegisterFlags adds report flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Format, c.Flags.Format, "f", string(FormatText),
		fmt.Sprintf("report format, one of: %s", strings.Join(formatNames(), ", ")))
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.IntVar(&c.Width, c.Flags.Width, 0,
		"text report width (0 detects the terminal width)")
	flags.BoolVar(&c.UndocumentedOnly, c.Flags.UndocumentedOnly, false,
		"list only undocumented declarations")
}

// RegisterCompletions registers shell completions for report flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(formatNames(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Width, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Width, err)
	}

	return nil
}

// NewRenderer creates a [Renderer] from the format and width in c.
func (c *Config) NewRenderer() (*Renderer, error) {
	f, err := ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	if c.Width < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative, got %d",
			docassoc.ErrInvalidOption, c.Flags.Width, c.Width)
	}

	return NewRenderer(f, WithWidth(c.Width))
}

// Write renders sum to the configured output. An empty output or "-"
// writes to stdout.
func (c *Config) Write(stdout io.Writer, sum *batch.Summary) error {
	r, err := c.NewRenderer()
	if err != nil {
		return err
	}

	var opts []DocumentOption
	if c.UndocumentedOnly {
		opts = append(opts, WithUndocumentedOnly())
	}

	doc := New(sum, opts...)

	if c.Output == "" || c.Output == "-" {
		return r.Render(stdout, doc)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("%w: %w", docassoc.ErrWriteOutput, err)
	}

	err = r.Render(f, doc)
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", docassoc.ErrWriteOutput, err)
	}

	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(AllFormats()))
	for _, f := range AllFormats() {
		names = append(names, string(f))
	}

	return names
}
