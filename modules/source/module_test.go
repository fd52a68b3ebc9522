package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nodeshop/internal/registry"
)

func TestConstant(t *testing.T) {
	r := registry.New()
	require.NoError(t, Constant("val0", 2).Register(r))
	require.NoError(t, Constant("val1", 5).Register(r))

	fn, err := r.LookupFunc("val0")
	require.NoError(t, err)
	require.Len(t, fn.Outputs, 1)
	assert.Equal(t, "f64", fn.Outputs[0].Type)

	outputs, err := fn.Fn(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.True(t, outputs[0].RawEquals(cty.NumberFloatVal(2)))
}

func TestConstant_DuplicateName(t *testing.T) {
	r := registry.New()
	require.NoError(t, Constant("val0", 2).Register(r))

	err := Constant("val0", 3).Register(r)
	assert.ErrorIs(t, err, registry.ErrDuplicateName)
}
