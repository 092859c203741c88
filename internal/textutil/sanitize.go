package textutil

import (
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"songrenamer/internal/logging"
)

// AllowedPunctuation lists the punctuation SanitizeName keeps.
const AllowedPunctuation = "'!@#$%&()-_.,"

func isNonASCII(r rune) bool { return r > unicode.MaxASCII }

// FoldASCII decomposes value (NFKD) and drops every rune without an ASCII
// equivalent, so "Café" becomes "Cafe" and "日本" becomes "".
func FoldASCII(value string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isNonASCII)))
	folded, _, err := transform.String(folder, value)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if isNonASCII(r) {
				return -1
			}
			return r
		}, value)
	}
	return folded
}

// SanitizeName converts a catalog name into a filesystem-safe string.
// Characters other than ASCII letters, digits, whitespace and
// AllowedPunctuation are removed and trailing periods are stripped.
func SanitizeName(value string) string {
	folded := FoldASCII(value)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r <= unicode.MaxASCII && unicode.IsSpace(r):
			b.WriteRune(r)
		case strings.ContainsRune(AllowedPunctuation, r):
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), ".")
}

// DigitsOnly strips every character that is not an ASCII digit.
func DigitsOnly(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}

// NameTracker sanitizes names for one catalog field and reports changes.
// The first original seen for a sanitized value owns it; later, different
// originals producing the same value are logged as collisions.
type NameTracker struct {
	field  string
	logger *slog.Logger
	owners map[string]string
}

// NewNameTracker returns a tracker for the named field. A nil logger
// silences reporting.
func NewNameTracker(field string, logger *slog.Logger) *NameTracker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &NameTracker{
		field:  field,
		logger: logger,
		owners: make(map[string]string),
	}
}

// Observe sanitizes original and returns the result.
func (t *NameTracker) Observe(original string) string {
	sanitized := SanitizeName(original)
	owner, seen := t.owners[sanitized]
	if !seen {
		t.owners[sanitized] = original
	}
	switch {
	case seen && owner != original:
		t.logger.Warn("sanitized name collision",
			logging.String("field", t.field),
			logging.String("original", original),
			logging.String("sanitized", sanitized),
			logging.String("first_original", owner),
		)
	case sanitized != original:
		t.logger.Info("sanitized name",
			logging.String("field", t.field),
			logging.String("original", original),
			logging.String("sanitized", sanitized),
		)
	}
	return sanitized
}

// Len reports how many distinct sanitized names have been observed.
func (t *NameTracker) Len() int {
	return len(t.owners)
}
