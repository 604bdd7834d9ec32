package utils_test

import (
	"testing"

	"github.com/jrsteele09/appeals-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestToStringSlice_MixedMembers(t *testing.T) {
	in := []any{"cases:read", map[string]any{"name": "cases:write"}, 42, map[string]any{"id": 1}}
	require.Equal(t, []string{"cases:read", "cases:write"}, utils.ToStringSlice(in))
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{}, utils.SplitList(""))
	require.Equal(t, []string{"a", "b"}, utils.SplitList("a, ,b,"))
}

func TestFirstNonEmpty(t *testing.T) {
	require.Equal(t, "x@y.com", utils.FirstNonEmpty("", "  ", "x@y.com", "z"))
	require.Equal(t, "", utils.FirstNonEmpty())
}

func TestPtrValue(t *testing.T) {
	require.Equal(t, 0, utils.Value[int](nil))
	require.Equal(t, "v", utils.Value(utils.Ptr("v")))
}
