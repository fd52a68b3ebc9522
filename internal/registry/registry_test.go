package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestBuiltinTypes(t *testing.T) {
	r := New()

	for _, name := range []string{"f64", "i64", "string", "bool"} {
		vt, err := r.LookupType(name)
		require.NoError(t, err)
		assert.Equal(t, name, vt.Name)
	}
	assert.Equal(t, []string{"bool", "f64", "i64", "string"}, r.TypeNames())
}

func TestRegisterType_Duplicate(t *testing.T) {
	r := New()

	err := r.RegisterType("f64", cty.Number)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRegisterOpaqueType(t *testing.T) {
	r := New()

	require.NoError(t, r.RegisterOpaqueType("image"))

	vt, err := r.LookupType("image")
	require.NoError(t, err)
	assert.True(t, vt.Cty.IsCapsuleType())

	// A second opaque type under the same name must be rejected.
	err = r.RegisterOpaqueType("image")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestLookupType_Unknown(t *testing.T) {
	r := New()

	_, err := r.LookupType("vec3")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestRegisterFunc(t *testing.T) {
	r := New()

	fn := &Func{
		Name:    "sum",
		Inputs:  []Slot{{Name: "a", Type: "f64"}, {Name: "b", Type: "f64"}},
		Outputs: []Slot{{Name: "result", Type: "f64"}},
		Fn: func(ctx context.Context, inputs []cty.Value) ([]cty.Value, error) {
			return []cty.Value{cty.NumberIntVal(0)}, nil
		},
	}
	require.NoError(t, r.RegisterFunc(fn))

	got, err := r.LookupFunc("sum")
	require.NoError(t, err)
	assert.Equal(t, fn, got)
}

func TestRegisterFunc_Duplicate(t *testing.T) {
	r := New()

	fn := &Func{Name: "noop"}
	require.NoError(t, r.RegisterFunc(fn))

	err := r.RegisterFunc(&Func{Name: "noop"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestRegisterFunc_UnknownSlotType(t *testing.T) {
	r := New()

	err := r.RegisterFunc(&Func{
		Name:   "blur",
		Inputs: []Slot{{Name: "src", Type: "image"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownType)

	// Unknown output types are rejected the same way.
	err = r.RegisterFunc(&Func{
		Name:    "render",
		Outputs: []Slot{{Name: "dst", Type: "image"}},
	})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestLookupFunc_Unknown(t *testing.T) {
	r := New()

	_, err := r.LookupFunc("sum")
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestFuncNames_Sorted(t *testing.T) {
	r := New()

	require.NoError(t, r.RegisterFunc(&Func{Name: "mult"}))
	require.NoError(t, r.RegisterFunc(&Func{Name: "sum"}))
	require.NoError(t, r.RegisterFunc(&Func{Name: "print"}))

	assert.Equal(t, []string{"mult", "print", "sum"}, r.FuncNames())
}
