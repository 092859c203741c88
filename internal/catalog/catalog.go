package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"songrenamer/internal/logging"
	"songrenamer/internal/textutil"
)

// Song is a catalog track keyed by ISRC code.
type Song struct {
	ISRC     string
	Sequence string
	Track    string
}

// Album is a catalog release keyed by digits-only UPC code.
type Album struct {
	UPC  string
	Name string
}

// Catalog holds the song and album lookup tables.
type Catalog struct {
	Songs  map[string]Song
	Albums map[string]Album
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		Songs:  make(map[string]Song),
		Albums: make(map[string]Album),
	}
}

// Song looks up a song by ISRC code.
func (c *Catalog) Song(isrc string) (Song, bool) {
	if c == nil {
		return Song{}, false
	}
	s, ok := c.Songs[isrc]
	return s, ok
}

// Album looks up an album by UPC code.
func (c *Catalog) Album(upc string) (Album, bool) {
	if c == nil {
		return Album{}, false
	}
	a, ok := c.Albums[upc]
	return a, ok
}

// Upsert stores value under key, replacing any previous value. When key was
// already present, onConflict receives the replaced and incoming values
// before the write.
func Upsert[K comparable, V any](m map[K]V, key K, value V, onConflict func(old, incoming V)) {
	if old, exists := m[key]; exists && onConflict != nil {
		onConflict(old, value)
	}
	m[key] = value
}

// Options configures catalog parsing.
type Options struct {
	// Delimiter separates fields; zero means comma.
	Delimiter rune
	Logger    *slog.Logger
}

// Load opens path and parses it. Open and parse failures are returned
// wrapped; callers treat them as fatal.
func Load(path string, opts Options) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	logger := logging.NewComponentLogger(opts.Logger, "catalog")
	logger.Debug("opened catalog", logging.String(logging.FieldPath, path))
	opts.Logger = logger
	return Parse(file, opts)
}

// Parse reads a delimited catalog with a header row. Columns are matched by
// name, so their order does not matter and extra columns are ignored.
func Parse(r io.Reader, opts Options) (*Catalog, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.ReuseRecord = true

	fields, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingColumnError{Columns: append([]string(nil), RequiredColumns...)}
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	cols, err := parseHeader(fields)
	if err != nil {
		return nil, err
	}

	b := newBuilder(logger)
	for line := 1; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row %d: %w", line, err)
		}
		b.add(cols.record(line, fields))
	}

	logger.Debug("parsed catalog",
		logging.Int("rows", b.rows),
		logging.Int("songs", len(b.catalog.Songs)),
		logging.Int("albums", len(b.catalog.Albums)),
	)
	return b.catalog, nil
}

type builder struct {
	catalog *Catalog
	logger  *slog.Logger
	tracks  *textutil.NameTracker
	albums  *textutil.NameTracker
	rows    int
}

func newBuilder(logger *slog.Logger) *builder {
	return &builder{
		catalog: New(),
		logger:  logger,
		tracks:  textutil.NewNameTracker(ColumnTrack, logger),
		albums:  textutil.NewNameTracker(ColumnAlbum, logger),
	}
}

func (b *builder) add(rec Record) {
	b.rows++
	line := logging.Int(logging.FieldLine, rec.Line)

	song := Song{ISRC: rec.ISRC, Sequence: rec.Sequence, Track: b.tracks.Observe(rec.Track)}
	if song.ISRC == "" {
		b.logger.Warn("row without ISRC code; song not indexed", line)
	} else {
		Upsert(b.catalog.Songs, song.ISRC, song, func(old, incoming Song) {
			b.logger.Info("duplicate ISRC",
				line,
				logging.String("isrc", incoming.ISRC),
				logging.String("old", old.Track),
				logging.String("new", incoming.Track),
			)
			if old.Track != incoming.Track {
				b.logger.Warn("duplicate ISRC overwrite",
					line,
					logging.String("isrc", incoming.ISRC),
					logging.String("old", old.Track),
					logging.String("new", incoming.Track),
				)
			}
			if old.Sequence != incoming.Sequence {
				b.logger.Info("duplicate ISRC sequence changed",
					line,
					logging.String("isrc", incoming.ISRC),
					logging.String("old", old.Sequence),
					logging.String("new", incoming.Sequence),
				)
			}
		})
	}

	album := Album{UPC: textutil.DigitsOnly(rec.UPC), Name: b.albums.Observe(rec.Album)}
	if album.UPC == "" {
		b.logger.Warn("row without usable UPC code; album not indexed", line, logging.String("upc", rec.UPC))
		return
	}
	Upsert(b.catalog.Albums, album.UPC, album, func(old, incoming Album) {
		if old.UPC != incoming.UPC {
			b.logger.Warn("upc code differs", line, logging.String("old", old.UPC), logging.String("new", incoming.UPC))
		}
		if old.Name != incoming.Name {
			b.logger.Warn("album name differs",
				line,
				logging.String("upc", incoming.UPC),
				logging.String("old", old.Name),
				logging.String("new", incoming.Name),
			)
		}
	})
}
