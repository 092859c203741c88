// Package textutil normalizes free-text catalog names into strings that are
// safe to use as file and directory names.
//
// SanitizeName folds Unicode to its closest ASCII form, keeps letters, digits,
// whitespace and a small punctuation allow-list, and strips trailing periods.
// NameTracker wraps it for catalog parsing so every altered or colliding name
// is reported through the caller's logger.
package textutil
