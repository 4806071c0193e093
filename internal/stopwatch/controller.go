// Package stopwatch owns the elapsed-time state and the start/stop toggle,
// and records an entry on every toggle edge.
package stopwatch

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/racewatch/racewatch/internal/history"
	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/timecodec"
)

// Phase is the stopwatch state.
type Phase int

const (
	Idle Phase = iota
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "idle"
}

// RowID identifies one rendered history row for later in-place updates.
type RowID uint64

// View is the rendered history table.
type View interface {
	// Append adds a row and returns its id.
	Append(e models.Entry) RowID
	// PatchCoordinates overwrites the latitude and longitude cells of a row.
	// It returns false when the row no longer exists.
	PatchCoordinates(id RowID, lat, lon string) bool
	// LastTime returns the time cell of the most recent row.
	LastTime() (string, bool)
	// Clear removes every row except the header.
	Clear()
}

// Lookup carries the identifiers a pending location lookup patches once it
// resolves. It is captured per entry, never derived from "the last row".
type Lookup struct {
	Slot history.Slot
	Row  RowID
}

// Transition describes the result of a toggle.
type Transition struct {
	Phase  Phase
	Kind   models.EntryKind
	Entry  models.Entry
	Lookup Lookup
	// TimerTag is the tag ticks must carry to be honored. Only meaningful
	// when Phase is Running.
	TimerTag int
	// Err reports a persistence failure. The entry is still rendered.
	Err error
}

// Controller is the stopwatch state machine.
type Controller struct {
	elapsed      int
	phase        Phase
	timerTag     int
	timerPending bool

	view   View
	log    *history.Log
	now    func() time.Time
	logger log.FieldLogger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock used for timezone labels.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates an idle stopwatch at zero.
func NewController(view View, hist *history.Log, logger log.FieldLogger, opts ...Option) *Controller {
	c := &Controller{
		view:   view,
		log:    hist,
		now:    time.Now,
		logger: logger.WithField("component", "stopwatch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Elapsed returns the elapsed seconds.
func (c *Controller) Elapsed() int { return c.elapsed }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// ToggleLabel is the label of the toggle control: "Start" when idle,
// "Stop" when running.
func (c *Controller) ToggleLabel() string {
	if c.phase == Running {
		return "Stop"
	}
	return "Start"
}

// Toggle starts an idle stopwatch or stops a running one.
func (c *Controller) Toggle() Transition {
	if c.phase == Running {
		return c.stop()
	}
	return c.start()
}

func (c *Controller) start() Transition {
	// A new tag orphans any tick still in flight from an earlier run.
	c.timerTag++
	c.timerPending = true
	c.phase = Running

	t := c.record(models.EntryStart, models.Null)
	t.TimerTag = c.timerTag
	return t
}

func (c *Controller) stop() Transition {
	c.timerTag++
	c.timerPending = false
	c.phase = Idle

	return c.record(models.EntryStop, timecodec.Format(c.sinceLastRow()))
}

// Tick advances the elapsed time by one second if tag belongs to the active
// timer. It reports whether the next tick should be scheduled.
func (c *Controller) Tick(tag int) bool {
	if !c.timerPending || tag != c.timerTag {
		return false
	}
	c.elapsed++
	return true
}

// Reset clears the persisted log and the table. Elapsed time, phase and the
// active timer are left alone, so a running watch keeps ticking.
func (c *Controller) Reset() error {
	c.view.Clear()
	if err := c.log.Clear(); err != nil {
		c.logger.WithError(err).Warn("Failed to clear history")
		return err
	}
	return nil
}

// ApplyLocation patches the row and slot captured in lookup. Identifiers
// that no longer exist are dropped. It reports whether anything changed.
func (c *Controller) ApplyLocation(lookup Lookup, lat, lon string) bool {
	rowPatched := c.view.PatchCoordinates(lookup.Row, lat, lon)
	slotPatched := c.log.PatchCoordinates(lookup.Slot, lat, lon)
	if !rowPatched && !slotPatched {
		c.logger.WithField("row", lookup.Row).Debug("Dropping location for cleared entry")
	}
	return rowPatched || slotPatched
}

// sinceLastRow is the elapsed time minus the time of the most recent row,
// or the total elapsed time when the table is empty. Rows replayed from an
// earlier run can be ahead of the current clock; the result never goes
// below zero.
func (c *Controller) sinceLastRow() int {
	last, ok := c.view.LastTime()
	if !ok {
		return c.elapsed
	}
	prev, err := timecodec.Parse(last)
	if err != nil {
		c.logger.WithError(err).Warn("Unreadable time in last row")
		return c.elapsed
	}
	if d := c.elapsed - prev; d > 0 {
		return d
	}
	return 0
}

func (c *Controller) record(kind models.EntryKind, elapsed string) Transition {
	e := models.NewEntry(timecodec.Format(c.elapsed), models.TimezoneLabel(c.now()), elapsed)

	slot, err := c.log.Append(e)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to persist entry")
	}
	row := c.view.Append(e)

	return Transition{
		Phase:  c.phase,
		Kind:   kind,
		Entry:  e,
		Lookup: Lookup{Slot: slot, Row: row},
		Err:    err,
	}
}
