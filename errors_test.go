package relgraph_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgraph"
)

func TestBuildError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := relgraph.NewBuildError("column", "id", "book", "already exists")
		assert.Equal(t, `relgraph: column "id" in table "book": already exists`, err.Error())
	})

	t.Run("ErrorWithoutTable", func(t *testing.T) {
		err := relgraph.NewBuildError("schema", "", "", "cannot join schemas with more than one database")
		assert.Equal(t, "relgraph: schema: cannot join schemas with more than one database", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := relgraph.NewBuildError("index", "i_123456", "book", "no columns")
		assert.True(t, errors.Is(err, relgraph.ErrBuild))
		assert.False(t, errors.Is(err, relgraph.ErrResolution))
	})

	t.Run("IsBuildError", func(t *testing.T) {
		err := relgraph.NewBuildError("column", "id", "book", "already exists")
		assert.True(t, relgraph.IsBuildError(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, relgraph.IsBuildError(wrapped))

		// Sentinel error
		assert.True(t, relgraph.IsBuildError(relgraph.ErrBuild))

		// Non-matching error
		assert.False(t, relgraph.IsBuildError(errors.New("other error")))
		assert.False(t, relgraph.IsBuildError(nil))
	})
}

func TestResolutionError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := relgraph.NewResolutionError("local column", "author_id", "book", "fk_1a2b3c")
		assert.Equal(t, `relgraph: local column "author_id" not found in table "book" (referenced by fk_1a2b3c)`, err.Error())
	})

	t.Run("ErrorMinimal", func(t *testing.T) {
		err := relgraph.NewResolutionError("foreign table", "author", "", "")
		assert.Equal(t, `relgraph: foreign table "author" not found`, err.Error())
	})

	t.Run("IsResolutionError", func(t *testing.T) {
		err := relgraph.NewResolutionError("foreign column", "id", "author", "")
		assert.True(t, relgraph.IsResolutionError(err))
		assert.True(t, errors.Is(err, relgraph.ErrResolution))
		assert.True(t, relgraph.IsResolutionError(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, relgraph.IsResolutionError(relgraph.NewBuildError("column", "id", "", "")))
		assert.False(t, relgraph.IsResolutionError(nil))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := relgraph.NewConfigError("platform", "oracle", "unsupported platform")
		assert.Equal(t, `relgraph: config error for "platform" (value: oracle): unsupported platform`, err.Error())
	})

	t.Run("ErrorWithoutValue", func(t *testing.T) {
		err := relgraph.NewConfigError("concurrency", nil, "must be positive")
		assert.Equal(t, `relgraph: config error for "concurrency": must be positive`, err.Error())
	})

	t.Run("IsConfigError", func(t *testing.T) {
		err := relgraph.NewConfigError("platform", "x", "bad")
		assert.True(t, relgraph.IsConfigError(err))
		assert.True(t, errors.Is(err, relgraph.ErrConfig))
		assert.False(t, relgraph.IsConfigError(errors.New("other error")))
		assert.False(t, relgraph.IsConfigError(nil))
	})
}

func TestAggregateError(t *testing.T) {
	t.Run("NoErrors", func(t *testing.T) {
		err := relgraph.NewAggregateError()
		assert.Nil(t, err)
	})

	t.Run("NilErrors", func(t *testing.T) {
		err := relgraph.NewAggregateError(nil, nil, nil)
		assert.Nil(t, err)
	})

	t.Run("SingleError", func(t *testing.T) {
		single := errors.New("single error")
		err := relgraph.NewAggregateError(single)
		assert.Equal(t, single, err)
	})

	t.Run("MultipleErrors", func(t *testing.T) {
		err1 := relgraph.NewResolutionError("local column", "a", "t", "")
		err2 := errors.New("error 2")
		err := relgraph.NewAggregateError(err1, err2)

		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "multiple errors")
		assert.Contains(t, err.Error(), "error 2")
		// Each collected error stays reachable.
		assert.True(t, relgraph.IsResolutionError(err))
		assert.True(t, errors.Is(err, err2))
	})

	t.Run("MixedNilAndErrors", func(t *testing.T) {
		err1 := errors.New("error 1")
		err := relgraph.NewAggregateError(nil, err1, nil)

		require.NotNil(t, err)
		assert.Equal(t, err1, err)
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Contains(t, relgraph.ErrBuild.Error(), "invalid schema structure")
	assert.Contains(t, relgraph.ErrResolution.Error(), "unresolved reference")
	assert.Contains(t, relgraph.ErrConfig.Error(), "invalid configuration")
}
