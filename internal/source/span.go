package source

import (
	"fmt"
)

// Span is a half-open byte range inside one file plus the expansion context
// that produced it.
type Span struct {
	File  FileID
	Start uint32    // в байтах включительно
	End   uint32    // в байтах не включительно
	Ctxt  ContextID // RootContext для кода, написанного руками
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	if s.Ctxt != RootContext {
		return fmt.Sprintf("%d:%d-%d#%d", s.File, s.Start, s.End, s.Ctxt)
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// FromExpansion reports whether the span was produced by an expansion step.
func (s Span) FromExpansion() bool {
	return s.Ctxt != RootContext
}

// Cover returns the smallest span containing both spans. Spans from other
// files are ignored; contexts are not reconciled, see Hygiene.Join for that.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) WithStart(start uint32) Span {
	s.Start = start
	if s.End < start {
		s.End = start
	}
	return s
}

func (s Span) WithEnd(end uint32) Span {
	s.End = end
	if s.Start > end {
		s.Start = end
	}
	return s
}

func (s Span) WithCtxt(ctxt ContextID) Span {
	s.Ctxt = ctxt
	return s
}

// ShrinkToStart returns the empty span at s.Start.
func (s Span) ShrinkToStart() Span {
	s.End = s.Start
	return s
}

// ShrinkToEnd returns the empty span at s.End.
func (s Span) ShrinkToEnd() Span {
	s.Start = s.End
	return s
}

// Between returns the gap from the end of s to the start of next, in the
// context of s. The result is empty when the spans overlap.
func (s Span) Between(next Span) Span {
	if next.Start < s.End {
		return Span{File: s.File, Start: s.End, End: s.End, Ctxt: s.Ctxt}
	}
	return Span{File: s.File, Start: s.End, End: next.Start, Ctxt: s.Ctxt}
}

// Contains reports whether other lies inside s (same file, any context).
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Offsets returns the byte range as ints for slicing.
func (s Span) Offsets() (start, end int) {
	return int(s.Start), int(s.End)
}
