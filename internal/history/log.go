// Package history persists recorded stopwatch entries in an indexed
// key-value layout that survives restarts.
package history

import (
	"strconv"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/racewatch/racewatch/internal/models"
	"github.com/racewatch/racewatch/internal/store"
)

// Store keys.
const (
	SizeKey  = "historyTableSize"
	EntryKey = "historyTableEntry"
	EpochKey = "historyTableEpoch"
)

// Slot addresses one persisted entry. Epoch identifies the generation of the
// log the slot was written in; a Clear starts a new generation.
type Slot struct {
	Index int
	Epoch string
}

// Valid reports whether the slot refers to a persisted entry.
func (s Slot) Valid() bool {
	return s.Index >= 0
}

// noSlot is returned when storage is unavailable.
var noSlot = Slot{Index: -1}

// Log is an append-only, indexed sequence of entries plus a count.
// With a nil store it runs degraded: every call is a no-op.
type Log struct {
	store  store.Store
	logger log.FieldLogger
}

// NewLog creates a log over s. s may be nil when storage is unavailable.
func NewLog(s store.Store, logger log.FieldLogger) *Log {
	return &Log{
		store:  s,
		logger: logger.WithField("component", "history"),
	}
}

// Available reports whether entries are being persisted.
func (l *Log) Available() bool {
	return l.store != nil
}

// Size returns the stored entry count.
func (l *Log) Size() int {
	if l.store == nil {
		return 0
	}
	v, ok := l.store.Get(SizeKey)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		l.logger.WithField("value", v).Warn("Invalid history size counter")
		return 0
	}
	return n
}

// Load returns the stored entries in index order. A store without a counter
// is initialized with a zero count. Undecodable slots are skipped.
func (l *Log) Load() ([]models.Entry, error) {
	if l.store == nil {
		l.logger.Warn("No persistent storage available")
		return nil, nil
	}

	if _, ok := l.store.Get(SizeKey); !ok {
		if err := l.store.Set(SizeKey, "0"); err != nil {
			return nil, err
		}
		if err := l.store.Set(EpochKey, uuid.NewString()); err != nil {
			return nil, err
		}
		return nil, nil
	}

	count := l.Size()
	entries := make([]models.Entry, 0, count)
	for i := 0; i < count; i++ {
		raw, ok := l.store.Get(entryKey(i))
		if !ok {
			l.logger.WithField("index", i).Warn("Missing history entry")
			continue
		}
		e, err := DecodeRecord(raw)
		if err != nil {
			l.logger.WithError(err).WithField("index", i).Warn("Skipping undecodable history entry")
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Append writes e at the next index and returns its slot.
func (l *Log) Append(e models.Entry) (Slot, error) {
	if l.store == nil {
		return noSlot, nil
	}

	record, err := EncodeRecord(e)
	if err != nil {
		return noSlot, err
	}

	index := l.Size()
	if err := l.store.Set(entryKey(index), record); err != nil {
		return noSlot, err
	}
	if err := l.store.Set(SizeKey, strconv.Itoa(index+1)); err != nil {
		return noSlot, err
	}
	return Slot{Index: index, Epoch: l.epoch()}, nil
}

// Entry returns the decoded entry at index.
func (l *Log) Entry(index int) (models.Entry, bool) {
	if l.store == nil || index < 0 || index >= l.Size() {
		return models.Entry{}, false
	}
	raw, ok := l.store.Get(entryKey(index))
	if !ok {
		return models.Entry{}, false
	}
	e, err := DecodeRecord(raw)
	if err != nil {
		return models.Entry{}, false
	}
	return e, true
}

// PatchCoordinates overwrites the latitude and longitude of the entry in
// slot. It does nothing and returns false when the slot no longer exists,
// including when the log was cleared after the slot was handed out.
func (l *Log) PatchCoordinates(slot Slot, lat, lon string) bool {
	if l.store == nil || !slot.Valid() || slot.Epoch != l.epoch() {
		return false
	}

	e, ok := l.Entry(slot.Index)
	if !ok {
		return false
	}
	e.Latitude = lat
	e.Longitude = lon

	record, err := EncodeRecord(e)
	if err != nil {
		l.logger.WithError(err).Warn("Failed to encode patched entry")
		return false
	}
	if err := l.store.Set(entryKey(slot.Index), record); err != nil {
		l.logger.WithError(err).WithField("index", slot.Index).Warn("Failed to persist coordinates")
		return false
	}
	return true
}

// Clear erases every stored entry and resets the counter to zero.
func (l *Log) Clear() error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Clear(); err != nil {
		return err
	}
	if err := l.store.Set(SizeKey, "0"); err != nil {
		return err
	}
	return l.store.Set(EpochKey, uuid.NewString())
}

func (l *Log) epoch() string {
	v, _ := l.store.Get(EpochKey)
	return v
}

func entryKey(i int) string {
	return EntryKey + strconv.Itoa(i)
}
