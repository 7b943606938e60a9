package typedcontent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candell/typed-content/pkg/typedcontent"
)

func TestIdentifyBlock(t *testing.T) {
	a := typedcontent.IdentifyBlock([]byte("howdy"))
	b := typedcontent.IdentifyBlock([]byte("howdy"))
	c := typedcontent.IdentifyBlock([]byte("howdy!"))

	assert.Equal(t, a, b, "identical bytes must map to the same identifier")
	assert.NotEqual(t, a, c)
	assert.False(t, a.IsZero())
	assert.True(t, strings.HasPrefix(a.String(), "sha256:"))
	assert.Len(t, a.Hex(), 64)
}

func TestParseIdentifier(t *testing.T) {
	valid := typedcontent.IdentifyBlock([]byte("howdy"))

	t.Run("RoundTrip", func(t *testing.T) {
		parsed, err := typedcontent.ParseIdentifier(valid.String())
		require.NoError(t, err)
		assert.Equal(t, valid, parsed)
	})

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing prefix", input: valid.Hex()},
		{name: "unknown algorithm", input: "md5:" + valid.Hex()},
		{name: "non-hex digest", input: "sha256:" + strings.Repeat("zz", 32)},
		{name: "short digest", input: "sha256:abcdef"},
		{name: "uppercase digest", input: "sha256:" + strings.ToUpper(valid.Hex())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := typedcontent.ParseIdentifier(tt.input)
			assert.ErrorIs(t, err, typedcontent.ErrMalformedIdentifier)
			assert.True(t, id.IsZero())
		})
	}
}

func TestIdentifierZeroValue(t *testing.T) {
	var id typedcontent.Identifier
	assert.True(t, id.IsZero())
	assert.Equal(t, "", id.String())
	assert.Equal(t, "", id.Hex())
}
