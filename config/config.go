// Package config decodes the settings of a schema comparison: the SQL
// dialect and its overrides, the comparator options and the migration
// safety checks. Settings come as TOML or YAML:
//
//	[platform]
//	dialect = "mysql"
//	max_identifier_length = 64
//
//	[platform.type_mapping]
//	BOOLEAN = "TINYINT(1)"
//
//	[diff]
//	renaming = true
//	exclude_tables = ["tmp_*"]
//
//	[validate]
//	allow_drop_index = true
package config

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/dialect"
	"github.com/syssam/relgraph/diff"
	"github.com/syssam/relgraph/internal/ident"
)

// Config holds the full configuration.
type Config struct {
	Platform PlatformConfig `toml:"platform" yaml:"platform"`
	Diff     DiffConfig     `toml:"diff" yaml:"diff"`
	Validate ValidateConfig `toml:"validate" yaml:"validate"`
}

// PlatformConfig selects the dialect and overrides its defaults.
type PlatformConfig struct {
	Dialect             string            `toml:"dialect" yaml:"dialect"`
	MaxIdentifierLength int               `toml:"max_identifier_length" yaml:"max_identifier_length"`
	ReservedWords       []string          `toml:"reserved_words" yaml:"reserved_words"`
	TypeMapping         map[string]string `toml:"type_mapping" yaml:"type_mapping"` // logical type -> SQL type
}

// DiffConfig holds the comparator settings.
type DiffConfig struct {
	CaseInsensitive bool     `toml:"case_insensitive" yaml:"case_insensitive"`
	Renaming        bool     `toml:"renaming" yaml:"renaming"`
	RemoveTables    bool     `toml:"remove_tables" yaml:"remove_tables"`
	ExcludeTables   []string `toml:"exclude_tables" yaml:"exclude_tables"`
	Concurrency     int      `toml:"concurrency" yaml:"concurrency"`
}

// ValidateConfig lists the risky changes accepted as warnings.
type ValidateConfig struct {
	AllowDropColumn    bool `toml:"allow_drop_column" yaml:"allow_drop_column"`
	AllowDropTable     bool `toml:"allow_drop_table" yaml:"allow_drop_table"`
	AllowDropIndex     bool `toml:"allow_drop_index" yaml:"allow_drop_index"`
	AllowNullToNotNull bool `toml:"allow_null_to_not_null" yaml:"allow_null_to_not_null"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Platform: PlatformConfig{Dialect: dialect.Generic},
		Diff:     DiffConfig{RemoveTables: true, Concurrency: 1},
	}
}

// DecodeTOML reads a TOML configuration. Keys missing from r keep their
// defaults; unknown keys are an error.
func DecodeTOML(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: parse toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, relgraph.NewConfigError(strings.Join(keys, ", "), nil, "unknown config keys")
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeYAML reads a YAML configuration. Keys missing from r keep their
// defaults; unknown keys are an error.
func DecodeYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check reports every invalid value of c.
func (c *Config) Check() error {
	var errs []error
	if c.Platform.Dialect != "" && !slices.Contains(dialect.Names(), ident.Lower(c.Platform.Dialect)) {
		errs = append(errs, relgraph.NewConfigError("platform.dialect", c.Platform.Dialect,
			"must be one of: "+strings.Join(dialect.Names(), ", ")))
	}
	if c.Platform.MaxIdentifierLength < 0 {
		errs = append(errs, relgraph.NewConfigError("platform.max_identifier_length", c.Platform.MaxIdentifierLength, "cannot be negative"))
	}
	if c.Diff.Concurrency < 1 {
		errs = append(errs, relgraph.NewConfigError("diff.concurrency", c.Diff.Concurrency, "must be at least 1"))
	}
	for _, n := range c.Diff.ExcludeTables {
		if strings.TrimSpace(n) == "" {
			errs = append(errs, relgraph.NewConfigError("diff.exclude_tables", n, "table name cannot be empty"))
		}
	}
	return relgraph.NewAggregateError(errs...)
}

// NewPlatform returns the configured platform. Extra options are applied
// after the configured ones.
func (c *Config) NewPlatform(opts ...dialect.Option) (*dialect.Platform, error) {
	var popts []dialect.Option
	if n := c.Platform.MaxIdentifierLength; n > 0 {
		popts = append(popts, dialect.WithMaxIdentifierLength(n))
	}
	if len(c.Platform.ReservedWords) > 0 {
		popts = append(popts, dialect.WithReservedWords(c.Platform.ReservedWords...))
	}
	logical := make([]string, 0, len(c.Platform.TypeMapping))
	for k := range c.Platform.TypeMapping {
		logical = append(logical, k)
	}
	slices.Sort(logical)
	for _, k := range logical {
		popts = append(popts, dialect.WithTypeMapping(k, c.Platform.TypeMapping[k]))
	}
	return dialect.New(c.Platform.Dialect, append(popts, opts...)...)
}

// DiffOptions returns the comparator options. The configured platform is
// included when a dialect other than generic is selected.
func (c *Config) DiffOptions() ([]diff.Option, error) {
	opts := []diff.Option{
		diff.WithCaseInsensitive(c.Diff.CaseInsensitive),
		diff.WithRenaming(c.Diff.Renaming),
		diff.WithRemoveTables(c.Diff.RemoveTables),
	}
	if len(c.Diff.ExcludeTables) > 0 {
		opts = append(opts, diff.WithExcludedTables(c.Diff.ExcludeTables...))
	}
	if c.Diff.Concurrency > 0 {
		opts = append(opts, diff.WithConcurrency(c.Diff.Concurrency))
	}
	if c.Platform.Dialect != "" && ident.Lower(c.Platform.Dialect) != dialect.Generic {
		p, err := c.NewPlatform()
		if err != nil {
			return nil, err
		}
		opts = append(opts, diff.WithPlatform(p))
	}
	return opts, nil
}

// ValidateOptions returns the options of diff.Validate.
func (c *Config) ValidateOptions() []diff.ValidateOption {
	var opts []diff.ValidateOption
	if c.Validate.AllowDropColumn {
		opts = append(opts, diff.AllowDropColumn())
	}
	if c.Validate.AllowDropTable {
		opts = append(opts, diff.AllowDropTable())
	}
	if c.Validate.AllowDropIndex {
		opts = append(opts, diff.AllowDropIndex())
	}
	if c.Validate.AllowNullToNotNull {
		opts = append(opts, diff.AllowNullToNotNull())
	}
	return opts
}
