package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContentTrimsWhitespace(t *testing.T) {
	trimmed, err := ValidateContent("  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", trimmed)
}

func TestValidateContentRejectsEmpty(t *testing.T) {
	_, err := ValidateContent("")
	assert.ErrorIs(t, err, ErrInvalidContent)

	// 只有空白的內容也要拒絕
	_, err = ValidateContent("   \t\n  ")
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestValidateContentLengthBoundary(t *testing.T) {
	// 剛好 500 字允許
	exact := strings.Repeat("a", MaxContentLength)
	trimmed, err := ValidateContent(exact)
	require.NoError(t, err)
	assert.Len(t, trimmed, MaxContentLength)

	// 501 字拒絕
	_, err = ValidateContent(exact + "a")
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestValidateContentLengthAfterTrim(t *testing.T) {
	// 前後空白不計入長度限制
	padded := "  " + strings.Repeat("a", MaxContentLength) + "  "
	trimmed, err := ValidateContent(padded)
	require.NoError(t, err)
	assert.Len(t, trimmed, MaxContentLength)
}

func TestValidateContentCountsRunesNotBytes(t *testing.T) {
	// 多位元組字元以字數計算
	content := strings.Repeat("好", MaxContentLength)
	_, err := ValidateContent(content)
	assert.NoError(t, err)

	_, err = ValidateContent(content + "好")
	assert.ErrorIs(t, err, ErrInvalidContent)
}
