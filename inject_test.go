package implinject

import (
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pboyd/implinject/static"
)

type Config interface {
	Name() string
}

type configImpl struct {
	name string
}

func (c *configImpl) Name() string {
	return c.name
}

var configInstance = static.DeclareFinal[Config]("INSTANCE")

var fieldSeq atomic.Int64

// declareFinal declares a fresh final field on Config so tests don't share
// state, even with -count > 1.
func declareFinal[T any](t *testing.T, prefix string) *static.Var[T] {
	t.Helper()
	name := fmt.Sprintf("%s_%d", prefix, fieldSeq.Add(1))
	return static.Declare[T](reflect.TypeFor[Config](), name, static.Final)
}

func withCapability(t *testing.T, rec capabilityRecord) {
	t.Helper()
	old := capability
	capability = func() capabilityRecord { return rec }
	t.Cleanup(func() { capability = old })
}

func TestInject(t *testing.T) {
	if Mechanism() == Unavailable {
		t.Skip("injection is disabled in this build")
	}

	assert := assert.New(t)
	require := require.New(t)

	first := &configImpl{name: "first"}
	require.NoError(InjectFor[Config]("INSTANCE", first))
	assert.Same(first, configInstance.Get())

	second := &configImpl{name: "second"}
	require.NoError(Inject(reflect.TypeFor[Config](), "INSTANCE", second))
	assert.Same(second, configInstance.Get())
	assert.Equal("second", configInstance.Get().Name())

	// Still final for everyone else.
	assert.ErrorIs(configInstance.Field().Set(first), static.ErrFinal)
	assert.Same(second, configInstance.Get())
}

func TestInject_InvalidArgument(t *testing.T) {
	v := declareFinal[Config](t, "invalid")
	original := &configImpl{name: "original"}
	require.NoError(t, v.Init(original))

	tests := []struct {
		name     string
		target   reflect.Type
		field    string
		instance any
	}{
		{"nil target", nil, v.Field().Name(), &configImpl{}},
		{"empty field name", reflect.TypeFor[Config](), "", &configImpl{}},
		{"nil instance", reflect.TypeFor[Config](), v.Field().Name(), nil},
		{"nil pointer instance", reflect.TypeFor[Config](), v.Field().Name(), (*configImpl)(nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Inject(tc.target, tc.field, tc.instance)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Same(t, original, v.Get())
		})
	}

	t.Run("before capability", func(t *testing.T) {
		withCapability(t, capabilityRecord{})
		assert.ErrorIs(t, Inject(nil, "INSTANCE", &configImpl{}), ErrInvalidArgument)
	})
}

func TestInject_NoSuchField(t *testing.T) {
	if Mechanism() == Unavailable {
		t.Skip("injection is disabled in this build")
	}

	v := declareFinal[Config](t, "untouched")
	original := &configImpl{name: "original"}
	require.NoError(t, v.Init(original))

	err := InjectFor[Config]("DOES_NOT_EXIST", &configImpl{})
	assert.ErrorIs(t, err, ErrNoSuchField)
	assert.ErrorIs(t, err, static.ErrNoSuchField)

	// Fields are looked up on the exact type they were declared on.
	err = InjectFor[*configImpl]("INSTANCE", &configImpl{})
	assert.ErrorIs(t, err, ErrNoSuchField)

	assert.Same(t, original, v.Get())
}

func TestInject_Unavailable(t *testing.T) {
	withCapability(t, capabilityRecord{kind: Unavailable})

	v := declareFinal[Config](t, "unavailable")

	assert.Equal(t, Unavailable, Mechanism())
	assert.ErrorIs(t, InjectFor[Config](v.Field().Name(), &configImpl{}), ErrUnsupportedEnvironment)
	assert.ErrorIs(t, InjectFor[Config]("DOES_NOT_EXIST", &configImpl{}), ErrUnsupportedEnvironment)
	assert.Nil(t, v.Get())
}

func TestIsNil(t *testing.T) {
	var nilConfig Config
	var nilMap map[string]int

	assert.True(t, isNil(nil))
	assert.True(t, isNil(nilConfig))
	assert.True(t, isNil(nilMap))
	assert.True(t, isNil((func())(nil)))
	assert.False(t, isNil(0))
	assert.False(t, isNil(""))
	assert.False(t, isNil(&configImpl{}))
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "modifier patch", ModifierPatchAvailable.String())
	assert.Equal(t, "raw memory write", RawMemoryWriteAvailable.String())
	assert.Equal(t, "unavailable", Unavailable.String())
}
