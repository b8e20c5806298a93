package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "rfc3339 utc",
			input:  "2024-03-01T12:30:00Z",
			want:   time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "date only",
			input:  "2024-03-01",
			want:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "space separated without offset",
			input:  "2024-03-01 08:15:00",
			want:   time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC),
			wantOK: true,
		},
		{name: "garbage", input: "not a date", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "missing marker", input: "NaN", wantOK: false},
		{name: "NaT", input: "NaT", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseTimestamp(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseNaiveTimestamp(t *testing.T) {
	t.Parallel()

	got, ok := ParseNaiveTimestamp("2024-01-01T10:00:00+05:30")
	require.True(t, ok)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), got)

	_, ok = ParseNaiveTimestamp("yesterday-ish")
	assert.False(t, ok)
}

func TestNaive(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("PST", -8*3600)
	in := time.Date(2023, 12, 31, 23, 59, 59, 500, zone)

	got := Naive(in)

	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 500, time.UTC), got)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, ok := ParseDate("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("2024-02-30")
	assert.False(t, ok)

	_, ok = ParseDate("29/02/2024")
	assert.False(t, ok)
}

func TestIsMissing(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", " ", "NaN", "nan", "NA", "NaT", "None", "null", "<nil>"} {
		assert.True(t, IsMissing(s), "%q should be missing", s)
	}
	for _, s := range []string{"0", "music", "2024-01-01"} {
		assert.False(t, IsMissing(s), "%q should not be missing", s)
	}
}
