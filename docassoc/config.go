package docassoc

import (
	"log/slog"

	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for engine configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	PublicOnly          string
	TrailingInheritance string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for engine configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewEngine] to create an [Engine].
type Config struct {
	Flags               Flags
	PublicOnly          bool
	TrailingInheritance bool
}

// NewConfig returns a new [Config] with default flag names and zero-value
// fields.
func NewConfig() *Config {
	f := Flags{
		PublicOnly:          "public-only",
		TrailingInheritance: "trailing-inheritance",
	}

	return f.NewConfig()
}

// RegisterFlags adds engine flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.PublicOnly, c.Flags.PublicOnly, false,
		"only report namespace-scope declarations and public members")
	flags.BoolVar(&c.TrailingInheritance, c.Flags.TrailingInheritance, false,
		"let nested forward declarations inherit a trailing comment of the enclosing class")
}

// NewEngine creates a new [Engine] from c, logging to logger.
func (c *Config) NewEngine(logger *slog.Logger) *Engine {
	return NewEngine(
		WithLogger(logger),
		WithPublicOnly(c.PublicOnly),
		WithTrailingInheritance(c.TrailingInheritance),
	)
}
