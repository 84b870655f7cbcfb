package capacity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModulo(t *testing.T) {
	for v := int64(0); v != 10; v++ {
		require.Equal(t, 1, Modulo.Capacity(0, v))
	}
	var got []int
	for v := int64(0); v != 6; v++ {
		got = append(got, Modulo.Capacity(2, v))
	}
	require.Equal(t, []int{3, 1, 2, 3, 1, 2}, got)
	require.Equal(t, 0, Modulo.Capacity(-1, 3))
}

func TestLinearAndConstant(t *testing.T) {
	require.Equal(t, 1, Linear.Capacity(0, 99))
	require.Equal(t, 5, Linear.Capacity(4, 7))
	require.Equal(t, 3, Constant(3).Capacity(12, 1))

	var p, err = ByName("linear")
	require.NoError(t, err)
	require.Equal(t, 3, p.Capacity(2, 0))

	_, err = ByName("nope")
	require.EqualError(t, err, `unknown capacity profile "nope"`)
}
