// Package responsive reads the site's mobile breakpoint from its stylesheet
// and provides the keyboard focus helper used by list widgets.
package responsive

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	docerrors "github.com/conneroisu/docsite/internal/errors"
)

// The declaration must open the stylesheet.
var breakpointPattern = regexp.MustCompile(`^\$breakpoint: (\d+px);`)

// Breakpoint is the width at which the layout switches to mobile.
type Breakpoint struct {
	// Value is the CSS length as written, e.g. "768px".
	Value string `json:"value"`
	// Px is Value in pixels.
	Px int `json:"px"`
}

// ReadBreakpoint reads the breakpoint from the stylesheet at path.
func ReadBreakpoint(path string) (Breakpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Breakpoint{}, docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot read stylesheet", err).
			WithFile(path)
	}

	bp, err := ParseBreakpoint(string(data))
	if err != nil {
		return Breakpoint{}, docerrors.NewValidationError(docerrors.ErrCodeBreakpointMissing, err.Error()).
			WithFile(path)
	}
	return bp, nil
}

// ParseBreakpoint extracts the breakpoint from stylesheet source.
func ParseBreakpoint(source string) (Breakpoint, error) {
	match := breakpointPattern.FindStringSubmatch(source)
	if match == nil {
		return Breakpoint{}, fmt.Errorf("stylesheet does not start with a $breakpoint declaration")
	}

	px, err := strconv.Atoi(strings.TrimSuffix(match[1], "px"))
	if err != nil {
		return Breakpoint{}, fmt.Errorf("breakpoint %q: %w", match[1], err)
	}

	return Breakpoint{Value: match[1], Px: px}, nil
}

// MediaMobile is the media query matching mobile layouts.
func (b Breakpoint) MediaMobile() string {
	return "screen and (max-width: " + b.Value + ")"
}

// MediaDesktop is the media query matching desktop layouts.
func (b Breakpoint) MediaDesktop() string {
	return "screen and not (max-width: " + b.Value + ")"
}
