package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer(t *testing.T) {
	t.Parallel()

	tokens, err := tokenize("file=something,s.e=2231,s=12,12=3,a=[1,2,3],b=[1],s=c")
	require.NoError(t, err)
	assert.Equal(t, []token{
		{key: "file", value: "something"},
		{key: "s.e", value: "2231"},
		{key: "s", value: "12"},
		{key: "12", value: "3"},
		{key: "a", value: "1,2,3", inside: '['},
		{key: "b", value: "1", inside: '['},
		{key: "s", value: "c"},
	}, tokens)

	_, err = tokenize("empty=")
	assert.EqualError(t, err, "key `empty=` with no value")

	_, err = tokenize("file=x,level")
	assert.EqualError(t, err, "key `level` with no value")

	_, err = tokenize("a=[1,2")
	assert.Error(t, err)

	_, err = tokenize("a=[1]x")
	assert.Error(t, err)
}
