package history

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/racewatch/racewatch/internal/models"
)

// EncodeRecord serializes an entry as a single CSV line. Values without
// commas, quotes or newlines come out as a plain comma join.
func EncodeRecord(e models.Entry) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(e.Fields()); err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeRecord parses a record written by EncodeRecord, or a legacy
// unquoted comma-joined record.
func DecodeRecord(s string) (models.Entry, error) {
	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = models.EntryFieldCount
	fields, err := r.Read()
	if err != nil {
		return models.Entry{}, fmt.Errorf("decode record %q: %w", s, err)
	}
	return models.EntryFromFields(fields)
}
