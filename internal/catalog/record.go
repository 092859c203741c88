package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Column names required in the catalog header.
const (
	ColumnISRC     = "isrc_code"
	ColumnSequence = "sequence_number"
	ColumnTrack    = "track_name"
	ColumnUPC      = "upc_code"
	ColumnAlbum    = "album_name"
)

// RequiredColumns lists the header columns every catalog must carry.
var RequiredColumns = []string{ColumnISRC, ColumnSequence, ColumnTrack, ColumnUPC, ColumnAlbum}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("catalog missing column")

// MissingColumnError names every required column absent from a header.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// Record is one catalog data row with its raw, unsanitized values.
type Record struct {
	// Line is the 1-indexed data row number; the header is not counted.
	Line     int
	ISRC     string
	Sequence string
	Track    string
	UPC      string
	Album    string
}

// header maps required column names to their index in a row.
type header map[string]int

func parseHeader(fields []string) (header, error) {
	positions := make(header, len(fields))
	for i, name := range fields {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := positions[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}
	return positions, nil
}

func (h header) record(line int, fields []string) Record {
	get := func(col string) string {
		idx := h[col]
		if idx >= len(fields) {
			return ""
		}
		return fields[idx]
	}
	return Record{
		Line:     line,
		ISRC:     get(ColumnISRC),
		Sequence: get(ColumnSequence),
		Track:    get(ColumnTrack),
		UPC:      get(ColumnUPC),
		Album:    get(ColumnAlbum),
	}
}
