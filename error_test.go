package symdex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/symdex"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := symdex.Errorf(symdex.ENOTFOUND, "set %q not found", "ogre")

	assert.Equal(t, symdex.ENOTFOUND, symdex.ErrorCode(err))
	assert.Equal(t, "set \"ogre\" not found", symdex.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, symdex.ErrorCode(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("load: %w", symdex.Errorf(symdex.ECONFLICT, "busy"))
		assert.Equal(t, symdex.ECONFLICT, symdex.ErrorCode(err))
	})

	t.Run("parse error is invalid input", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("import: %w", &symdex.ParseError{Entry: -1, Line: 1, Column: 1, Msg: "bad"})
		assert.Equal(t, symdex.EINVALID, symdex.ErrorCode(err))
	})

	t.Run("other errors are internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, symdex.EINTERNAL, symdex.ErrorCode(errors.New("disk full")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, symdex.ErrorMessage(nil))
	})

	t.Run("hides internal details", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", symdex.ErrorMessage(errors.New("disk full")))
	})

	t.Run("parse errors show their position", func(t *testing.T) {
		t.Parallel()
		err := &symdex.ParseError{Source: "all_0.js", Entry: 2, Offset: 40, Line: 5, Column: 3, Msg: "unterminated string"}
		assert.Equal(t, "all_0.js:5:3: entry 2: unterminated string", symdex.ErrorMessage(err))
	})
}

func TestParseError_Error(t *testing.T) {
	t.Parallel()

	t.Run("outside any record", func(t *testing.T) {
		t.Parallel()
		err := &symdex.ParseError{Entry: -1, Line: 1, Column: 1, Msg: "expected var declaration"}
		assert.Equal(t, "1:1: expected var declaration", err.Error())
	})

	t.Run("with source and entry", func(t *testing.T) {
		t.Parallel()
		err := &symdex.ParseError{Source: "https://example.com/search/all_1.js", Entry: 0, Line: 3, Column: 10, Msg: "duplicate key"}
		assert.Equal(t, "https://example.com/search/all_1.js:3:10: entry 0: duplicate key", err.Error())
	})
}
