package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racewatch/racewatch/internal/models"
)

func TestHistoryViewAppendAndClear(t *testing.T) {
	h := NewHistoryView()
	assert.Equal(t, 1, h.Len())

	_, ok := h.LastTime()
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		h.Append(models.NewEntry("0 h 0 m 0 s", "GMT+0", models.Null))
	}
	assert.Equal(t, 4, h.Len())

	h.Clear()
	assert.Equal(t, 1, h.Len())
	assert.Nil(t, h.Row(0))
}

func TestHistoryViewPatchCoordinates(t *testing.T) {
	h := NewHistoryView()
	first := h.Append(models.NewEntry("0 h 0 m 0 s", "GMT+0", models.Null))
	h.Append(models.NewEntry("0 h 0 m 5 s", "GMT+0", "0 h 0 m 5 s"))

	require.True(t, h.PatchCoordinates(first, "52.520", "13.404"))
	assert.Equal(t, []string{"0 h 0 m 0 s", "GMT+0", "52.520", "13.404", models.Null}, h.Row(0))
	assert.Equal(t, models.Null, h.Row(1)[cellLatitude])

	last, ok := h.LastTime()
	require.True(t, ok)
	assert.Equal(t, "0 h 0 m 5 s", last)
}

func TestHistoryViewStaleHandle(t *testing.T) {
	h := NewHistoryView()
	id := h.Append(models.NewEntry("0 h 0 m 0 s", "GMT+0", models.Null))
	h.Clear()
	h.Append(models.NewEntry("0 h 0 m 1 s", "GMT+0", models.Null))

	assert.False(t, h.PatchCoordinates(id, "1.000", "2.000"))
	assert.Equal(t, models.Null, h.Row(0)[cellLatitude])
}

func TestHistoryViewReplace(t *testing.T) {
	h := NewHistoryView()
	h.Append(models.NewEntry("0 h 9 m 0 s", "GMT+0", models.Null))

	h.Replace([]models.Entry{
		{Time: "0 h 0 m 0 s", Timezone: "GMT+1", Latitude: "1.000", Longitude: "2.000", Elapsed: models.Null},
		{Time: "0 h 0 m 3 s", Timezone: "GMT+1", Latitude: models.Null, Longitude: models.Null, Elapsed: "0 h 0 m 3 s"},
	})

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "1.000", h.Row(0)[cellLatitude])
	assert.Equal(t, "0 h 0 m 3 s", h.Row(1)[cellElapsed])
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([][]string{
		{"0 h 0 m 0 s", "GMT+0", models.Null, models.Null, models.Null},
	}, 0)

	for _, h := range historyHeader {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "0 h 0 m 0 s")
	assert.Contains(t, out, "GMT+0")
}
