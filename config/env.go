package config

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/syssam/relgraph"
)

// Environment variables read by ApplyEnv.
const (
	EnvDialect         = "RELGRAPH_DIALECT"
	EnvExcludeTables   = "RELGRAPH_EXCLUDE_TABLES" // comma separated
	EnvRenaming        = "RELGRAPH_RENAMING"
	EnvCaseInsensitive = "RELGRAPH_CASE_INSENSITIVE"
	EnvConcurrency     = "RELGRAPH_CONCURRENCY"
)

// ParseEnv reads variables in dotenv format.
func ParseEnv(r io.Reader) (map[string]string, error) {
	env, err := godotenv.Parse(r)
	if err != nil {
		return nil, relgraph.NewConfigError("env", nil, err.Error())
	}
	return env, nil
}

// Environ returns the variables of the process environment.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// ApplyEnv overrides c with the RELGRAPH_* variables of env and checks
// the result. Variables that are not set leave c unchanged.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvDialect]; ok {
		c.Platform.Dialect = strings.TrimSpace(v)
	}
	if v, ok := env[EnvExcludeTables]; ok {
		c.Diff.ExcludeTables = nil
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				c.Diff.ExcludeTables = append(c.Diff.ExcludeTables, n)
			}
		}
	}
	for key, dst := range map[string]*bool{
		EnvRenaming:        &c.Diff.Renaming,
		EnvCaseInsensitive: &c.Diff.CaseInsensitive,
	} {
		v, ok := env[key]
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return relgraph.NewConfigError(key, v, "not a boolean")
		}
		*dst = b
	}
	if v, ok := env[EnvConcurrency]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return relgraph.NewConfigError(EnvConcurrency, v, "not an integer")
		}
		c.Diff.Concurrency = n
	}
	return c.Check()
}
