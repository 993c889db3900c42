package parser

import (
	"iter"
	"strings"
)

type eventKind int

const (
	eventBoundary eventKind = iota
	eventBand
)

// lineEvent tags one source line. Lines that are neither boundaries nor band
// lines produce no event.
type lineEvent struct {
	kind    eventKind
	line    int
	channel string
}

// section is a half-open line range [start, end) owned by one channel
type section struct {
	name      string
	start     int
	end       int
	bandLines []int
}

// scanEvents walks the lines once, emitting a boundary for every
// "IIR Bypassed.<name>" marker and for every bare header line immediately
// followed by an "IIR Crossover" line, and a band event for every band line.
// A line can be both a boundary and a band line; the boundary comes first.
func scanEvents(lines []string) iter.Seq[lineEvent] {
	return func(yield func(lineEvent) bool) {
		for i, raw := range lines {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}

			if name, ok := firstChannelName(line); ok {
				if !yield(lineEvent{kind: eventBoundary, line: i, channel: name}) {
					return
				}
			} else if isHeaderCandidate(line) && i+1 < len(lines) &&
				strings.HasPrefix(strings.TrimSpace(lines[i+1]), crossoverPrefix) {
				if !yield(lineEvent{kind: eventBoundary, line: i, channel: line}) {
					return
				}
			}

			if bandPattern.MatchString(raw) {
				if !yield(lineEvent{kind: eventBand, line: i}) {
					return
				}
			}
		}
	}
}

// foldSections groups events into sections. Each boundary closes the open
// section at its own line and opens a new one; the last section ends at
// lineCount. Band events before the first boundary belong to no section.
func foldSections(events iter.Seq[lineEvent], lineCount int) []section {
	var sections []section
	var cur *section

	for ev := range events {
		switch ev.kind {
		case eventBoundary:
			if cur != nil {
				cur.end = ev.line
				sections = append(sections, *cur)
			}
			cur = &section{name: ev.channel, start: ev.line}
		case eventBand:
			if cur != nil {
				cur.bandLines = append(cur.bandLines, ev.line)
			}
		}
	}

	if cur != nil {
		cur.end = lineCount
		sections = append(sections, *cur)
	}
	return sections
}
