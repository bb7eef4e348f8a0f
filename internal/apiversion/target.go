package apiversion

import (
	"fmt"
	"strings"
)

// Channel is a release track.
type Channel int

const (
	// Preview documents include entities that are only in preview.
	Preview Channel = iota
	// GA documents include only generally available entities.
	GA
)

const previewSuffix = "-preview"

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case Preview:
		return "preview"
	case GA:
		return "ga"
	default:
		return "unknown"
	}
}

// Dir returns the directory the channel's documents are written under.
func (c Channel) Dir() string {
	if c == Preview {
		return "preview"
	}
	return "stable"
}

// Target is the point in time and channel a document is generated for.
type Target struct {
	Date    Date
	Channel Channel
}

// NewTarget returns a target for the given date and channel.
func NewTarget(date Date, channel Channel) Target {
	return Target{Date: date, Channel: channel}
}

// ParseTarget parses an API version string such as "2021-01-03" or
// "2021-01-03-preview".
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	channel := GA
	if strings.HasSuffix(s, previewSuffix) {
		channel = Preview
		s = strings.TrimSuffix(s, previewSuffix)
	}

	date, err := ParseDate(s)
	if err != nil {
		return Target{}, fmt.Errorf("invalid api version: %w", err)
	}
	return NewTarget(date, channel), nil
}

// ParseTargets parses a list of API version strings, preserving order.
func ParseTargets(values []string) ([]Target, error) {
	targets := make([]Target, 0, len(values))
	for _, v := range values {
		t, err := ParseTarget(v)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// String returns the API version string: the zero-padded date, suffixed with
// "-preview" for preview targets.
func (t Target) String() string {
	if t.Channel == Preview {
		return t.Date.String() + previewSuffix
	}
	return t.Date.String()
}

// Dir returns the relative directory of the target's document,
// e.g. "preview/2021-01-03-preview" or "stable/2021-01-03".
func (t Target) Dir() string {
	return t.Channel.Dir() + "/" + t.String()
}
