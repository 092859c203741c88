package catalog_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"songrenamer/internal/catalog"
	"songrenamer/internal/testsupport"
)

func TestParseBuildsSongAndAlbumTables(t *testing.T) {
	input := strings.Join([]string{
		"isrc_code,sequence_number,track_name,upc_code,album_name",
		"US1234567890,3,My Song,0 12345-67890 5,First Album.",
		"US0000000001,1,Café: Intro,012345678905,First Album.",
	}, "\n")

	cat, err := catalog.Parse(strings.NewReader(input), catalog.Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cat.Songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(cat.Songs))
	}
	song, ok := cat.Song("US1234567890")
	if !ok {
		t.Fatal("expected US1234567890 to be indexed")
	}
	if song.Sequence != "3" || song.Track != "My Song" {
		t.Fatalf("unexpected song %+v", song)
	}
	if intro, _ := cat.Song("US0000000001"); intro.Track != "Cafe Intro" {
		t.Fatalf("expected sanitized track, got %q", intro.Track)
	}
	album, ok := cat.Album("012345678905")
	if !ok {
		t.Fatalf("expected digit-normalized UPC key, got %v", cat.Albums)
	}
	if album.Name != "First Album" {
		t.Fatalf("expected sanitized album name, got %q", album.Name)
	}
}

func TestParseMatchesColumnsByName(t *testing.T) {
	input := "album_name;extra;track_name;upc_code;sequence_number;isrc_code\n" +
		"Album X;ignored;Track Y;999;7;GB1111111111\n"

	cat, err := catalog.Parse(strings.NewReader(input), catalog.Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	song, ok := cat.Song("GB1111111111")
	if !ok || song.Sequence != "7" || song.Track != "Track Y" {
		t.Fatalf("unexpected song %+v (found=%v)", song, ok)
	}
	if album, ok := cat.Album("999"); !ok || album.Name != "Album X" {
		t.Fatalf("unexpected album %+v (found=%v)", album, ok)
	}
}

func TestParseAcceptsBOMAndPaddedHeader(t *testing.T) {
	input := "\ufeffisrc_code, sequence_number ,track_name,upc_code,album_name\nUS1,1,A,1,B\n"
	if _, err := catalog.Parse(strings.NewReader(input), catalog.Options{}); err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
}

func TestParseDuplicateISRCLastWriteWins(t *testing.T) {
	input := strings.Join([]string{
		"isrc_code,sequence_number,track_name,upc_code,album_name",
		"US1234567890,1,First Name,111,Album",
		"US1234567890,1,First Name,111,Album",
		"US1234567890,2,Second Name,111,Album",
		"US1234567890,3,Third Name,111,Album",
	}, "\n")
	rec, logger := testsupport.NewLogRecorder()

	cat, err := catalog.Parse(strings.NewReader(input), catalog.Options{Logger: logger})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	song, _ := cat.Song("US1234567890")
	if song.Track != "Third Name" || song.Sequence != "3" {
		t.Fatalf("expected last row to win, got %+v", song)
	}
	if len(cat.Songs) != 1 {
		t.Fatalf("expected a single song entry, got %d", len(cat.Songs))
	}

	warnings := rec.Find(slog.LevelWarn, "duplicate ISRC overwrite")
	if len(warnings) != 2 {
		t.Fatalf("expected one warning per differing duplicate (2), got %d: %v", len(warnings), rec.Lines())
	}
	if warnings[0].Attrs["old"] != "First Name" || warnings[0].Attrs["new"] != "Second Name" {
		t.Fatalf("unexpected warning attrs %v", warnings[0].Attrs)
	}
	if got := rec.Count(slog.LevelInfo, "duplicate ISRC"); got != 3 {
		t.Fatalf("expected every duplicate noted at info (3), got %d", got)
	}
}

func TestParseDuplicateUPCWarnsOnNameChange(t *testing.T) {
	input := strings.Join([]string{
		"isrc_code,sequence_number,track_name,upc_code,album_name",
		"US1,1,A,0123-4,Album One",
		"US2,2,B,01234,Album One",
		"US3,3,C,01 234,Album Two",
	}, "\n")
	rec, logger := testsupport.NewLogRecorder()

	cat, err := catalog.Parse(strings.NewReader(input), catalog.Options{Logger: logger})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if album, _ := cat.Album("01234"); album.Name != "Album Two" {
		t.Fatalf("expected last album name to win, got %q", album.Name)
	}
	if got := rec.Count(slog.LevelWarn, "album name differs"); got != 1 {
		t.Fatalf("expected 1 album name warning, got %d: %v", got, rec.Lines())
	}
	if got := rec.Count(slog.LevelWarn, "upc code differs"); got != 0 {
		t.Fatalf("codes are the map key and cannot differ, got %d warnings", got)
	}
}

func TestParseSkipsEmptyKeys(t *testing.T) {
	input := strings.Join([]string{
		"isrc_code,sequence_number,track_name,upc_code,album_name",
		",1,Orphan,n/a,No Code",
	}, "\n")
	rec, logger := testsupport.NewLogRecorder()

	cat, err := catalog.Parse(strings.NewReader(input), catalog.Options{Logger: logger})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cat.Songs) != 0 || len(cat.Albums) != 0 {
		t.Fatalf("expected empty tables, got %d songs %d albums", len(cat.Songs), len(cat.Albums))
	}
	if got := len(rec.Find(slog.LevelWarn, "row without ISRC code; song not indexed")); got != 1 {
		t.Fatalf("expected ISRC warning, got %v", rec.Lines())
	}
	if got := len(rec.Find(slog.LevelWarn, "row without usable UPC code; album not indexed")); got != 1 {
		t.Fatalf("expected UPC warning, got %v", rec.Lines())
	}
}

func TestParseMissingColumns(t *testing.T) {
	input := "isrc_code,track_name,album_name\nUS1,A,B\n"

	_, err := catalog.Parse(strings.NewReader(input), catalog.Options{})
	if !errors.Is(err, catalog.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	var missing *catalog.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %T", err)
	}
	if strings.Join(missing.Columns, ",") != "sequence_number,upc_code" {
		t.Fatalf("unexpected missing columns %v", missing.Columns)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := catalog.Parse(strings.NewReader(""), catalog.Options{}); !errors.Is(err, catalog.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn for empty input, got %v", err)
	}
}

func TestParseMalformedRow(t *testing.T) {
	input := "isrc_code,sequence_number,track_name,upc_code,album_name\nUS1,1,A,1\n"
	_, err := catalog.Parse(strings.NewReader(input), catalog.Options{})
	if err == nil || !strings.Contains(err.Error(), "row 1") {
		t.Fatalf("expected row-numbered parse error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.csv"), catalog.Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := testsupport.WriteCatalog(t, t.TempDir(),
		[]string{"US1234567890", "3", "My Song", "886443927087", "Greatest Hits"},
	)
	cat, err := catalog.Load(path, catalog.Options{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, ok := cat.Album("886443927087"); !ok {
		t.Fatal("expected album from file")
	}
}

func TestUpsertConflictCallback(t *testing.T) {
	m := map[string]int{}
	var conflicts [][2]int
	record := func(old, incoming int) { conflicts = append(conflicts, [2]int{old, incoming}) }

	catalog.Upsert(m, "a", 1, record)
	catalog.Upsert(m, "b", 2, record)
	catalog.Upsert(m, "a", 3, record)
	catalog.Upsert(m, "a", 4, nil)

	if m["a"] != 4 || m["b"] != 2 {
		t.Fatalf("unexpected map %v", m)
	}
	if len(conflicts) != 1 || conflicts[0] != [2]int{1, 3} {
		t.Fatalf("unexpected conflicts %v", conflicts)
	}
}
