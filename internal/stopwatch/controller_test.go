package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racewatch/racewatch/internal/config"
	"github.com/racewatch/racewatch/internal/history"
	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/store"
)

type fakeRow struct {
	id    RowID
	entry models.Entry
}

type fakeView struct {
	rows   []fakeRow
	nextID RowID
}

func (v *fakeView) Append(e models.Entry) RowID {
	v.nextID++
	v.rows = append(v.rows, fakeRow{id: v.nextID, entry: e})
	return v.nextID
}

func (v *fakeView) PatchCoordinates(id RowID, lat, lon string) bool {
	for i := range v.rows {
		if v.rows[i].id == id {
			v.rows[i].entry.Latitude = lat
			v.rows[i].entry.Longitude = lon
			return true
		}
	}
	return false
}

func (v *fakeView) LastTime() (string, bool) {
	if len(v.rows) == 0 {
		return "", false
	}
	return v.rows[len(v.rows)-1].entry.Time, true
}

func (v *fakeView) Clear() { v.rows = nil }

type fixture struct {
	ctrl *Controller
	view *fakeView
	log  *history.Log
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	view := &fakeView{}
	hist := history.NewLog(store.NewMemoryStore(), config.DiscardLogger())
	_, err := hist.Load()
	require.NoError(t, err)

	utc := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return fixture{
		ctrl: NewController(view, hist, config.DiscardLogger(), WithClock(utc)),
		view: view,
		log:  hist,
	}
}

func (f fixture) ticks(tag, n int) {
	for i := 0; i < n; i++ {
		f.ctrl.Tick(tag)
	}
}

func TestStartStopScenario(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, Idle, f.ctrl.Phase())
	assert.Equal(t, "Start", f.ctrl.ToggleLabel())

	start := f.ctrl.Toggle()
	require.NoError(t, start.Err)
	assert.Equal(t, Running, start.Phase)
	assert.Equal(t, models.EntryStart, start.Kind)
	assert.Equal(t, "Stop", f.ctrl.ToggleLabel())
	assert.Equal(t, models.Null, start.Entry.Elapsed)
	assert.Equal(t, "0 h 0 m 0 s", start.Entry.Time)
	assert.Equal(t, "GMT+0", start.Entry.Timezone)

	f.ticks(start.TimerTag, 5)
	assert.Equal(t, 5, f.ctrl.Elapsed())

	stop := f.ctrl.Toggle()
	assert.Equal(t, Idle, stop.Phase)
	assert.Equal(t, models.EntryStop, stop.Kind)
	assert.Equal(t, "0 h 0 m 5 s", stop.Entry.Time)
	assert.Equal(t, "0 h 0 m 5 s", stop.Entry.Elapsed)

	assert.Equal(t, 2, f.log.Size())
	assert.Len(t, f.view.rows, 2)
}

func TestSecondStopMeasuresFromLastRow(t *testing.T) {
	f := newFixture(t)

	first := f.ctrl.Toggle()
	f.ticks(first.TimerTag, 10)
	f.ctrl.Toggle()

	second := f.ctrl.Toggle()
	f.ticks(second.TimerTag, 15)
	stop := f.ctrl.Toggle()

	assert.Equal(t, "0 h 0 m 25 s", stop.Entry.Time)
	assert.Equal(t, "0 h 0 m 15 s", stop.Entry.Elapsed)
}

func TestStopOnEmptyTableUsesTotal(t *testing.T) {
	f := newFixture(t)

	start := f.ctrl.Toggle()
	f.ticks(start.TimerTag, 7)
	require.NoError(t, f.ctrl.Reset())

	stop := f.ctrl.Toggle()
	assert.Equal(t, "0 h 0 m 7 s", stop.Entry.Elapsed)
}

func TestStopNeverNegative(t *testing.T) {
	f := newFixture(t)
	// A row replayed from an earlier run, ahead of the fresh clock.
	f.view.Append(models.NewEntry("1 h 0 m 0 s", "GMT+0", models.Null))

	start := f.ctrl.Toggle()
	f.ticks(start.TimerTag, 3)
	f.view.Append(models.NewEntry("2 h 0 m 0 s", "GMT+0", models.Null))

	stop := f.ctrl.Toggle()
	assert.Equal(t, "0 h 0 m 0 s", stop.Entry.Elapsed)
}

func TestStaleTicksIgnored(t *testing.T) {
	f := newFixture(t)

	first := f.ctrl.Toggle()
	f.ticks(first.TimerTag, 2)
	f.ctrl.Toggle()

	assert.False(t, f.ctrl.Tick(first.TimerTag), "tick after stop")
	assert.Equal(t, 2, f.ctrl.Elapsed())

	second := f.ctrl.Toggle()
	assert.NotEqual(t, first.TimerTag, second.TimerTag)
	assert.False(t, f.ctrl.Tick(first.TimerTag), "tick from previous run")
	assert.True(t, f.ctrl.Tick(second.TimerTag))
	assert.Equal(t, 3, f.ctrl.Elapsed())
}

func TestResetWhileRunningKeepsTicking(t *testing.T) {
	f := newFixture(t)

	start := f.ctrl.Toggle()
	f.ticks(start.TimerTag, 4)

	require.NoError(t, f.ctrl.Reset())
	assert.Equal(t, 0, f.log.Size())
	assert.Empty(t, f.view.rows)
	assert.Equal(t, Running, f.ctrl.Phase())

	assert.True(t, f.ctrl.Tick(start.TimerTag))
	assert.Equal(t, 5, f.ctrl.Elapsed())
}

func TestApplyLocation(t *testing.T) {
	f := newFixture(t)

	start := f.ctrl.Toggle()
	assert.True(t, f.ctrl.ApplyLocation(start.Lookup, "37.774", "-122.419"))

	assert.Equal(t, "37.774", f.view.rows[0].entry.Latitude)
	e, ok := f.log.Entry(start.Lookup.Slot.Index)
	require.True(t, ok)
	assert.Equal(t, "-122.419", e.Longitude)
}

func TestApplyLocationAfterResetDropped(t *testing.T) {
	f := newFixture(t)

	stale := f.ctrl.Toggle()
	require.NoError(t, f.ctrl.Reset())
	fresh := f.ctrl.Toggle()

	assert.False(t, f.ctrl.ApplyLocation(stale.Lookup, "1.000", "2.000"))

	require.Len(t, f.view.rows, 1)
	assert.Equal(t, models.Null, f.view.rows[0].entry.Latitude)
	e, ok := f.log.Entry(fresh.Lookup.Slot.Index)
	require.True(t, ok)
	assert.Equal(t, models.Null, e.Latitude)
}

func TestDegradedStorageStillRenders(t *testing.T) {
	view := &fakeView{}
	ctrl := NewController(view, history.NewLog(nil, config.DiscardLogger()), config.DiscardLogger())

	start := ctrl.Toggle()
	require.NoError(t, start.Err)
	assert.False(t, start.Lookup.Slot.Valid())
	assert.Len(t, view.rows, 1)

	assert.True(t, ctrl.ApplyLocation(start.Lookup, "1.000", "2.000"))
	assert.NoError(t, ctrl.Reset())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
}
