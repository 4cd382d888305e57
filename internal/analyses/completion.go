package analyses

import (
	"errors"
	"strings"
)

// ReasoningMarker separates the model's reasoning from its answer.
const ReasoningMarker = "</think>"

const openingTag = "<think>"

// ErrMarkerMissing reports a completion without a reasoning marker.
var ErrMarkerMissing = errors.New("reasoning marker missing")

// Completion is a raw completion split at the first reasoning marker.
//
// With the marker, Think + ReasoningMarker + Response == Raw. Without it,
// HasReasoning is false, Think is empty and Response is the whole text.
type Completion struct {
	Raw          string
	Think        string
	Response     string
	HasReasoning bool
}

// ParseCompletion splits raw at the first ReasoningMarker.
func ParseCompletion(raw string) Completion {
	before, after, ok := strings.Cut(raw, ReasoningMarker)
	if !ok {
		return Completion{Raw: raw, Response: raw}
	}
	return Completion{
		Raw:          raw,
		Think:        before,
		Response:     after,
		HasReasoning: true,
	}
}

// Split returns the two segments and whether the marker was present.
// Without the marker it returns ("", Raw, false).
func (c Completion) Split() (before, after string, ok bool) {
	if !c.HasReasoning {
		return "", c.Raw, false
	}
	return c.Think, c.Response, true
}

// Err returns ErrMarkerMissing when the completion had no reasoning segment.
func (c Completion) Err() error {
	if !c.HasReasoning {
		return ErrMarkerMissing
	}
	return nil
}

// Reasoning is Think without the leading <think> tag, for display.
func (c Completion) Reasoning() string {
	s := strings.TrimSpace(c.Think)
	s = strings.TrimPrefix(s, openingTag)
	return strings.TrimSpace(s)
}

// Answer is Response trimmed for display.
func (c Completion) Answer() string {
	return strings.TrimSpace(c.Response)
}
