package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

func TestFormatEntryNumber(t *testing.T) {
	assert.Equal(t, "JE-000001", domain.FormatEntryNumber(1))
	assert.Equal(t, "JE-999999", domain.FormatEntryNumber(999999))
	assert.Equal(t, "JE-1000000", domain.FormatEntryNumber(1000000))
}

func TestParseEntryNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"JE-000042", 42, true},
		{"JE-1000000", 1000000, true},
		{"JE-000000", 0, false},
		{"JE-00042", 0, false},
		{"JE-0000042", 0, false},
		{"JE--00042", 0, false},
		{"JE-+00042", 0, false},
		{"JE-00004a", 0, false},
		{" JE-000042", 0, false},
		{"je-000042", 0, false},
		{"JE-99999999999999999999", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := domain.ParseEntryNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseEntryNumber_RoundTrip(t *testing.T) {
	for _, n := range []int64{1, 9, 10, 99999, 999999, 1000000, 123456789} {
		got, ok := domain.ParseEntryNumber(domain.FormatEntryNumber(n))
		assert.True(t, ok, n)
		assert.Equal(t, n, got)
	}
}
