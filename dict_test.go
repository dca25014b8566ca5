package osufile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	osufile "github.com/osukit/go-osufile"
)

func TestDict(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		d := osufile.NewDict()
		d.Set("b", 1)
		d.Set("a", 2)
		d.Set("c", 3)
		require.Equal(t, []string{"b", "a", "c"}, d.Keys())
		require.Equal(t, 3, d.Len())
	})

	t.Run("overwrite keeps slot", func(t *testing.T) {
		d := osufile.NewDict()
		d.Set("a", 1)
		d.Set("b", 2)
		d.Set("a", 3)
		require.Equal(t, []string{"a", "b"}, d.Keys())
		v, ok := d.Get("a")
		require.True(t, ok)
		require.Equal(t, 3, v)
	})

	t.Run("set default", func(t *testing.T) {
		d := osufile.NewDict()
		d.Set("a", 1)
		d.SetDefault("a", 9)
		d.SetDefault("b", 2)
		v, _ := d.Get("a")
		require.Equal(t, 1, v)
		v, _ = d.Get("b")
		require.Equal(t, 2, v)
	})

	t.Run("delete", func(t *testing.T) {
		d := osufile.NewDict()
		d.Set("a", 1)
		d.Set("b", 2)
		d.Delete("a")
		require.Equal(t, []string{"b"}, d.Keys())
		_, ok := d.Get("a")
		require.False(t, ok)
		d.Delete("missing")
		require.Equal(t, 1, d.Len())
	})
}
