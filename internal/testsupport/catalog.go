package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// CatalogHeader is the canonical catalog column order.
var CatalogHeader = []string{"isrc_code", "sequence_number", "track_name", "upc_code", "album_name"}

// WriteCatalog writes a comma-separated catalog with CatalogHeader followed
// by rows, returning its path.
func WriteCatalog(t testing.TB, dir string, rows ...[]string) string {
	t.Helper()
	return WriteCatalogWithHeader(t, dir, CatalogHeader, rows...)
}

// WriteCatalogWithHeader writes a catalog using a caller-supplied header.
func WriteCatalogWithHeader(t testing.TB, dir string, header []string, rows ...[]string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, "catalog.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create catalog: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		t.Fatalf("write catalog header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write catalog rows: %v", err)
	}
	return path
}
