package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	require.True(t, ValidatePhone("+919876543210"))
	require.True(t, ValidatePhone("+1 (415) 555-0132"))
	require.True(t, ValidatePhone("9876543210"))

	require.False(t, ValidatePhone(""))
	require.False(t, ValidatePhone("+0123"))
	require.False(t, ValidatePhone("not-a-number"))
}

func TestDaysBetween(t *testing.T) {
	loc := time.UTC
	start := time.Date(2025, 3, 1, 23, 59, 0, 0, loc)
	end := time.Date(2025, 3, 3, 0, 1, 0, 0, loc)

	require.Equal(t, 2, DaysBetween(start, end))
	require.Equal(t, 0, DaysBetween(start, start))
}
