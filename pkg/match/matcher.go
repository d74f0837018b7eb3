// Package match recognises device conflict suffixes in file names.
//
// A sync client that sees the same file edited on two machines keeps both
// copies and renames one of them by appending "-<device>" before the
// extension, optionally followed by "-<n>" counters when the name is taken
// again: report-DESKTOP1.docx, report-DESKTOP1-2.docx, notes-LAPTOP.
package match

import (
	"fmt"
	"regexp"
	"strings"
)

// Separator precedes the device identifier in a conflict suffix
const Separator = "-"

// AnyDevice is the identifier pattern used when device names are unknown
const AnyDevice = `[a-zA-Z][a-zA-Z0-9]+`

var deviceName = regexp.MustCompile(`^` + AnyDevice + `$`)

// Result describes a conflict file name and its inferred canonical name
type Result struct {
	// Name is the conflict file name
	Name string
	// CanonicalName is Name with the conflict suffix removed
	CanonicalName string
	// Device is the identifier embedded in Name, empty if it does not look
	// like a device name
	Device string
}

// Pattern tests file names for one device's conflict suffix
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// NewPattern builds the suffix pattern for a literal device identifier
func NewPattern(device string) (*Pattern, error) {
	if device == "" {
		return nil, fmt.Errorf("device identifier cannot be empty")
	}
	return compile(device, regexp.QuoteMeta(device))
}

// NewAnyDevicePattern builds the generic pattern used in identify mode
func NewAnyDevicePattern() *Pattern {
	p, _ := compile(AnyDevice, AnyDevice)
	return p
}

func compile(source, expr string) (*Pattern, error) {
	re, err := regexp.Compile(regexp.QuoteMeta(Separator) + expr + `(-\d+)*(\.|$)`)
	if err != nil {
		return nil, fmt.Errorf("invalid device pattern %q: %w", source, err)
	}
	return &Pattern{source: source, re: re}, nil
}

// String returns the device identifier or generic pattern this was built from
func (p *Pattern) String() string {
	return p.source
}

// Match tests a file name. Every matched suffix is stripped, keeping the
// extension dot, to form the canonical name.
func (p *Pattern) Match(name string) (Result, bool) {
	if !p.re.MatchString(name) {
		return Result{}, false
	}

	// A bare suffix such as "-PC1" has no canonical counterpart
	canonical := p.re.ReplaceAllString(name, "${2}")
	if canonical == "" {
		return Result{}, false
	}

	return Result{
		Name:          name,
		CanonicalName: canonical,
		Device:        ExtractDevice(name),
	}, true
}

// ExtractDevice returns the text after the last separator of name, cut at
// the last extension dot, or "" when that text is not a plausible device
// identifier.
func ExtractDevice(name string) string {
	i := strings.LastIndex(name, Separator)
	if i < 0 {
		return ""
	}

	device := name[i+len(Separator):]
	if dot := strings.LastIndex(device, "."); dot > 0 {
		device = device[:dot]
	}

	if !deviceName.MatchString(device) {
		return ""
	}
	return device
}

// Matcher holds the ordered device patterns of a sweep
type Matcher struct {
	patterns []*Pattern
}

// NewMatcher compiles one pattern per device, preserving order.
// Duplicates are kept; an empty list matches nothing.
func NewMatcher(devices []string) (*Matcher, error) {
	m := &Matcher{}
	for _, d := range devices {
		p, err := NewPattern(d)
		if err != nil {
			return nil, err
		}
		m.patterns = append(m.patterns, p)
	}
	return m, nil
}

// NewIdentifyMatcher returns a matcher with the single generic pattern
func NewIdentifyMatcher() *Matcher {
	return &Matcher{patterns: []*Pattern{NewAnyDevicePattern()}}
}

// Patterns returns the compiled patterns in order
func (m *Matcher) Patterns() []*Pattern {
	return m.patterns
}

// Len returns the number of patterns
func (m *Matcher) Len() int {
	return len(m.patterns)
}
