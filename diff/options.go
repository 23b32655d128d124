package diff

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/syssam/relgraph"
	"github.com/syssam/relgraph/model"
)

// Config holds the comparator settings.
type Config struct {
	// CaseInsensitive compares table, column, index and foreign key names
	// ignoring case.
	CaseInsensitive bool
	// Renaming turns detected table renames into renamed entries. When off,
	// they are reported as possible renames and the tables stay added and
	// removed.
	Renaming bool
	// RemoveTables reports tables missing from the target as removed.
	RemoveTables bool
	// ExcludedTables are names, or patterns with '*' wildcards, of tables
	// that are never reported.
	ExcludedTables []string
	// Platform overrides the platform used to normalize tables.
	Platform model.Platform
	// Concurrency is the number of table pairs compared at once.
	Concurrency int
	// Logger receives rename decisions at debug level.
	Logger *slog.Logger

	excluded []*regexp.Regexp
}

// Option configures a Comparator.
type Option func(*Config) error

// WithCaseInsensitive compares names ignoring case.
func WithCaseInsensitive(v bool) Option {
	return func(c *Config) error {
		c.CaseInsensitive = v
		return nil
	}
}

// WithRenaming applies detected table renames instead of only reporting
// them as possible renames.
func WithRenaming(v bool) Option {
	return func(c *Config) error {
		c.Renaming = v
		return nil
	}
}

// WithRemoveTables reports tables missing from the target as removed.
// It is on by default; turn it off for append-only migrations.
func WithRemoveTables(v bool) Option {
	return func(c *Config) error {
		c.RemoveTables = v
		return nil
	}
}

// WithExcludedTables excludes tables by name. A '*' in a name matches any
// run of characters.
func WithExcludedTables(names ...string) Option {
	return func(c *Config) error {
		for _, n := range names {
			if n == "" {
				return relgraph.NewConfigError("ExcludedTables", nil, "table name cannot be empty")
			}
		}
		c.ExcludedTables = append(c.ExcludedTables, names...)
		return nil
	}
}

// WithPlatform sets the platform used to normalize both databases,
// overriding the platforms attached to them.
func WithPlatform(p model.Platform) Option {
	return func(c *Config) error {
		if p == nil {
			return relgraph.NewConfigError("Platform", nil, "platform cannot be nil")
		}
		c.Platform = p
		return nil
	}
}

// WithConcurrency compares up to n table pairs in parallel. Results are
// identical to a sequential run.
func WithConcurrency(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return relgraph.NewConfigError("Concurrency", n, "must be at least 1")
		}
		c.Concurrency = n
		return nil
	}
}

// WithLogger sets the logger receiving rename decisions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return relgraph.NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

func defaultConfig() *Config {
	return &Config{RemoveTables: true, Concurrency: 1, Logger: slog.Default()}
}

// compileExcluded turns the excluded names into anchored patterns.
func (c *Config) compileExcluded() {
	c.excluded = c.excluded[:0]
	for _, n := range c.ExcludedTables {
		expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(n), `\*`, ".*") + "$"
		if c.CaseInsensitive {
			expr = "(?i)" + expr
		}
		c.excluded = append(c.excluded, regexp.MustCompile(expr))
	}
}

func (c *Config) isExcluded(t *model.Table) bool {
	for _, re := range c.excluded {
		if re.MatchString(t.Name()) {
			return true
		}
	}
	return false
}
