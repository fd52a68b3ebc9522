package print

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/registry"
)

func TestPrintWritesValue(t *testing.T) {
	var buf bytes.Buffer
	r := registry.New()
	require.NoError(t, (&Module{Out: &buf}).Register(r))

	fn, err := r.LookupFunc("print")
	require.NoError(t, err)

	outputs, err := fn.Fn(context.Background(), []cty.Value{cty.NumberFloatVal(35)})
	require.NoError(t, err)
	assert.Empty(t, outputs)
	assert.Equal(t, "35\n", buf.String())
}

func TestPrintNull(t *testing.T) {
	var buf bytes.Buffer
	r := registry.New()
	require.NoError(t, (&Module{Out: &buf}).Register(r))

	fn, err := r.LookupFunc("print")
	require.NoError(t, err)

	_, err = fn.Fn(context.Background(), []cty.Value{cty.NullVal(cty.Number)})
	require.NoError(t, err)
	assert.Equal(t, "(null)\n", buf.String())
}
