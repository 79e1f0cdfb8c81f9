// Package chunk splits card-oriented text into keyword-labelled chunks.
//
// A chunk is a keyword line plus every following line up to the next
// top-level keyword or the end of input. Splitting is a two-level state
// machine: the outer loop opens a chunk on each top-level keyword; while a
// chunk is open, lines whose first token is one of that keyword's nested
// keywords are marked as nested records of the chunk. Any other line is a
// continuation line. A nested keyword that the open chunk does not allow
// starts an orphan chunk so the caller can reject it.
package chunk

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// Grammar lists the keywords a card file recognizes.
type Grammar struct {
	// Top lists keywords that always start a new chunk.
	Top []string
	// Nested maps a top-level keyword to the record keywords that belong
	// inside its chunk.
	Nested map[string][]string
}

// Line is one source line with its 1-based number and whitespace fields.
type Line struct {
	Number int
	Text   string
	Fields []string
	// Nested is set when the line's first field is a nested keyword of
	// the enclosing chunk.
	Nested bool
}

// Keyword returns the first field of the line, or "" for a blank line.
func (l Line) Keyword() string {
	if len(l.Fields) == 0 {
		return ""
	}
	return l.Fields[0]
}

// Blank reports whether the line has no fields.
func (l Line) Blank() bool { return len(l.Fields) == 0 }

// Chunk is a keyword line followed by its continuation lines. Lines[0] is
// the keyword line itself, except for the leading chunk of text that
// precedes any keyword, whose Keyword is "".
type Chunk struct {
	Keyword string
	Lines   []Line
	// Orphan marks a chunk opened by a nested keyword outside of any
	// chunk that allows it.
	Orphan bool
}

// Line returns the source line number of the chunk's first line.
func (c *Chunk) Line() int {
	if len(c.Lines) == 0 {
		return 0
	}
	return c.Lines[0].Number
}

// Body returns the lines after the keyword line.
func (c *Chunk) Body() []Line {
	if len(c.Lines) == 0 {
		return nil
	}
	return c.Lines[1:]
}

// Set is the ordered result of Split.
type Set struct {
	chunks  []*Chunk
	byKey   map[string][]*Chunk
	keyword []string
}

// Chunks returns every chunk in source order.
func (s *Set) Chunks() []*Chunk { return s.chunks }

// ByKeyword returns the chunks for one keyword in source order.
func (s *Set) ByKeyword(k string) []*Chunk { return s.byKey[k] }

// Keywords returns the distinct chunk keywords in first-seen order.
func (s *Set) Keywords() []string { return s.keyword }

// Len returns the number of chunks.
func (s *Set) Len() int { return len(s.chunks) }

func (s *Set) add(c *Chunk) {
	if _, ok := s.byKey[c.Keyword]; !ok {
		s.keyword = append(s.keyword, c.Keyword)
	}
	s.chunks = append(s.chunks, c)
	s.byKey[c.Keyword] = append(s.byKey[c.Keyword], c)
}

// Read buffers all of r and splits it with g. A trailing carriage return is
// stripped from each line so CRLF and LF files split identically.
func Read(r io.Reader, g Grammar) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Split(Lines(data), g), nil
}

// Lines splits data into lines without their terminators. A final line
// terminator does not produce an extra empty line.
func Lines(data []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		out = append(out, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return out
}

type state int

const (
	stateTop state = iota // before the first chunk
	stateChunk
)

// Split groups lines into chunks according to g.
func Split(lines []string, g Grammar) *Set {
	top := make(map[string]bool, len(g.Top))
	for _, k := range g.Top {
		top[k] = true
	}
	nestedAny := make(map[string]bool)
	for _, ks := range g.Nested {
		for _, k := range ks {
			nestedAny[k] = true
		}
	}

	set := &Set{byKey: make(map[string][]*Chunk)}
	var (
		st      = stateTop
		cur     *Chunk
		allowed map[string]bool
	)
	open := func(c *Chunk) {
		set.add(c)
		cur = c
		st = stateChunk
		allowed = nil
		if ks, ok := g.Nested[c.Keyword]; ok && !c.Orphan {
			allowed = make(map[string]bool, len(ks))
			for _, k := range ks {
				allowed[k] = true
			}
		}
	}

	for i, text := range lines {
		ln := Line{Number: i + 1, Text: text, Fields: strings.Fields(text)}
		kw := ln.Keyword()

		switch {
		case top[kw]:
			open(&Chunk{Keyword: kw, Lines: []Line{ln}})
		case nestedAny[kw] && st == stateChunk && allowed[kw]:
			ln.Nested = true
			cur.Lines = append(cur.Lines, ln)
		case nestedAny[kw]:
			// Nested record with no chunk that can own it.
			ln.Nested = true
			open(&Chunk{Keyword: kw, Lines: []Line{ln}, Orphan: true})
		case st == stateChunk:
			cur.Lines = append(cur.Lines, ln)
		case ln.Blank():
			// Leading blank lines carry no record.
		default:
			open(&Chunk{Keyword: "", Lines: []Line{ln}})
		}
	}
	return set
}
