package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"09-30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestParseRange(t *testing.T) {
	iv, err := ParseRange("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 540, End: 1020}, iv)
	assert.Equal(t, 480, iv.Duration())

	_, err = ParseRange("17:00", "09:00")
	assert.Error(t, err, "inverted range")

	_, err = ParseRange("09:00", "09:00")
	assert.Error(t, err, "empty range")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "drops inverted and empty intervals",
			in:   []Interval{{540, 540}, {600, 570}},
			want: nil,
		},
		{
			name: "sorts disjoint intervals",
			in:   []Interval{{840, 1020}, {540, 720}},
			want: []Interval{{540, 720}, {840, 1020}},
		},
		{
			name: "merges overlapping intervals",
			in:   []Interval{{540, 780}, {720, 1020}},
			want: []Interval{{540, 1020}},
		},
		{
			name: "merges touching intervals",
			in:   []Interval{{540, 720}, {720, 1020}},
			want: []Interval{{540, 1020}},
		},
		{
			name: "contained interval disappears",
			in:   []Interval{{540, 1020}, {600, 660}},
			want: []Interval{{540, 1020}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSubtract(t *testing.T) {
	open := []Interval{{540, 1020}} // 09:00-17:00

	tests := []struct {
		name    string
		blocked Interval
		want    []Interval
	}{
		{
			name:    "inner block splits the interval",
			blocked: Interval{720, 780}, // 12:00-13:00
			want:    []Interval{{540, 720}, {780, 1020}},
		},
		{
			name:    "block at the start trims the head",
			blocked: Interval{540, 600},
			want:    []Interval{{600, 1020}},
		},
		{
			name:    "block at the end trims the tail",
			blocked: Interval{960, 1020},
			want:    []Interval{{540, 960}},
		},
		{
			name:    "covering block removes the interval",
			blocked: Interval{0, FullDayEnd},
			want:    nil,
		},
		{
			name:    "disjoint block changes nothing",
			blocked: Interval{60, 120},
			want:    open,
		},
		{
			name:    "empty block changes nothing",
			blocked: Interval{600, 600},
			want:    open,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtract(open, tt.blocked))
		})
	}
}

func TestUnion(t *testing.T) {
	open := []Interval{{540, 720}} // 09:00-12:00

	got := Union(open, Interval{840, 1020}) // add 14:00-17:00
	assert.Equal(t, []Interval{{540, 720}, {840, 1020}}, got)

	got = Union(open, Interval{660, 780}) // overlapping add merges
	assert.Equal(t, []Interval{{540, 780}}, got)

	got = Union(open, Interval{600, 600}) // empty add is a no-op
	assert.Equal(t, open, got)
}

func TestOverlapping(t *testing.T) {
	assert.False(t, overlapping(nil))
	assert.False(t, overlapping([]Interval{{540, 720}}))
	// Touching intervals are legal adjacent slots, not a conflict.
	assert.False(t, overlapping([]Interval{{540, 720}, {720, 1020}}))
	assert.True(t, overlapping([]Interval{{540, 780}, {720, 1020}}))
	assert.True(t, overlapping([]Interval{{840, 1020}, {540, 900}}))
}
