package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/littleman/internal/world"
)

type stubFormat struct {
	name string
	exts []string
}

func (f stubFormat) Name() string         { return f.name }
func (f stubFormat) Extensions() []string { return f.exts }

func (f stubFormat) Decode(id int, _ []byte) (*world.Map, error) {
	return world.New(id, 1, 1, 0, 0, world.NoEdges(), nil, nil), nil
}

func (f stubFormat) Encode(*world.Map) ([]byte, error) { return nil, nil }

func TestRegisterAndLookup(t *testing.T) {
	Register(stubFormat{name: "zz-stub", exts: []string{".zzs", ".zzt"}})

	assert.True(t, Exists("zz-stub"))
	f, err := Get("zz-stub")
	require.NoError(t, err)
	assert.Equal(t, "zz-stub", f.Name())

	byExt, ok := ForExtension("ZZT")
	require.True(t, ok)
	assert.Equal(t, "zz-stub", byExt.Name())

	_, ok = ForExtension(".nope")
	assert.False(t, ok)

	_, err = Get("nope")
	assert.ErrorContains(t, err, `unknown format "nope"`)

	list := List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
	assert.Contains(t, Extensions(), ".zzs")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(stubFormat{name: "zz-dup", exts: []string{".zzd"}})

	assert.Panics(t, func() {
		Register(stubFormat{name: "zz-dup", exts: []string{".zze"}})
	})
	assert.Panics(t, func() {
		Register(stubFormat{name: "zz-other", exts: []string{".zzd"}})
	})
	assert.False(t, Exists("zz-other"))
}
