package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPaginationParams(t *testing.T) {
	p := GetPaginationParams(0, 0)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 20, p.Limit)

	p = GetPaginationParams(3, 50)
	require.Equal(t, 3, p.Page)
	require.Equal(t, 50, p.Limit)

	p = GetPaginationParams(1, 500)
	require.Equal(t, 100, p.Limit)
}

func TestCalculateOffset(t *testing.T) {
	require.Equal(t, 0, PaginationParams{Page: 1, Limit: 20}.CalculateOffset())
	require.Equal(t, 40, PaginationParams{Page: 3, Limit: 20}.CalculateOffset())
	require.Equal(t, 0, PaginationParams{Page: 0, Limit: 20}.CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(45, 2, 20)
	require.Equal(t, 2, meta.Page)
	require.Equal(t, 20, meta.Limit)
	require.EqualValues(t, 45, meta.TotalCount)
	require.Equal(t, 3, meta.TotalPages)

	meta = CalculateMeta(0, 1, 20)
	require.Equal(t, 0, meta.TotalPages)

	meta = CalculateMeta(10, 1, 0)
	require.Equal(t, 1, meta.TotalPages)
}
