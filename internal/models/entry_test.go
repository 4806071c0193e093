package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneLabel(t *testing.T) {
	tests := []struct {
		name   string
		offset int // seconds east of UTC
		want   string
	}{
		{name: "UTC", offset: 0, want: "GMT+0"},
		{name: "New York", offset: -5 * 3600, want: "GMT+5"},
		{name: "Berlin summer", offset: 2 * 3600, want: "GMT+-2"},
		{name: "India truncates", offset: 5*3600 + 1800, want: "GMT+-5"},
		{name: "Newfoundland truncates", offset: -(3*3600 + 1800), want: "GMT+3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := time.FixedZone(tt.name, tt.offset)
			now := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)
			assert.Equal(t, tt.want, TimezoneLabel(now))
		})
	}
}

func TestFormatCoordinate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{37.7749, "37.774"},
		{-122.4194, "-122.419"},
		{1.001, "1.001"},
		{10, "10.000"},
		{0.5, "0.500"},
		{51.99999, "51.999"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCoordinate(tt.in))
		})
	}
}

func TestEntryFields(t *testing.T) {
	e := NewEntry("0 h 0 m 5 s", "GMT+0", Null)
	assert.Equal(t, []string{"0 h 0 m 5 s", "GMT+0", Null, Null, Null}, e.Fields())
	assert.False(t, e.HasLocation())

	back, err := EntryFromFields(e.Fields())
	require.NoError(t, err)
	assert.Equal(t, e, back)

	_, err = EntryFromFields([]string{"a", "b"})
	assert.Error(t, err)
}
