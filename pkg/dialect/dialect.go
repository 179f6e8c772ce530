// Package dialect classifies diagram files into one of the three supported
// export conventions.
//
// Classification is purely textual and never fails:
//
//	dialect.Sniff(`<svg><g data-rna-type="scene">...`) // Annotated
//	dialect.Sniff(`<svg><g id="Letters">...`)          // LegacyGrouped
//	dialect.Sniff(`<svg><text>G</text>...`)            // Unannotated
package dialect

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect identifies a file convention.
type Dialect int

const (
	// Unannotated files carry bare drawing primitives only.
	Unannotated Dialect = iota
	// LegacyGrouped files group primitives under a fixed id vocabulary.
	LegacyGrouped
	// Annotated files tag every meaningful element with data-rna-type.
	Annotated
)

// Marker is the attribute that identifies the annotated dialect.
const Marker = "data-rna-type"

// LettersGroup is the group id that identifies the legacy grouped dialect.
const LettersGroup = "Letters"

var names = map[Dialect]string{
	Unannotated:   "unannotated",
	LegacyGrouped: "legacy-grouped",
	Annotated:     "annotated",
}

func (d Dialect) String() string {
	if s, ok := names[d]; ok {
		return s
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// Geometric reports whether the dialect links primitives by position and so
// needs a resolver pass.
func (d Dialect) Geometric() bool { return d != Annotated }

// All returns the dialects in detection priority order.
func All() []Dialect { return []Dialect{Annotated, LegacyGrouped, Unannotated} }

// Parse converts a dialect name back to its value.
func Parse(name string) (Dialect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, s := range names {
		if s == name {
			return d, nil
		}
	}
	switch name {
	case "legacy", "grouped":
		return LegacyGrouped, nil
	}
	return Unannotated, fmt.Errorf("unknown dialect %q (want annotated, legacy-grouped or unannotated)", name)
}

var (
	markerAttr  = regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(Marker) + `\s*=`)
	lettersAttr = regexp.MustCompile(`(?:^|\s)id\s*=\s*["']` + LettersGroup + `["']`)
)

// Sniff classifies raw document text.
func Sniff(text string) Dialect {
	switch {
	case markerAttr.MatchString(text):
		return Annotated
	case lettersAttr.MatchString(text):
		return LegacyGrouped
	default:
		return Unannotated
	}
}
