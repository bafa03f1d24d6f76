package source

import "strconv"

// Span: полуоткрытый диапазон байт [Start, End) в одном файле.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// At returns an empty span at off.
func At(file FileID, off uint32) Span { return Span{File: file, Start: off, End: off} }

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Len() uint32 { return s.End - s.Start }

// String renders file:start-end, the form used as a dedup key.
func (s Span) String() string {
	return strconv.FormatUint(uint64(s.File), 10) + ":" +
		strconv.FormatUint(uint64(s.Start), 10) + "-" + strconv.FormatUint(uint64(s.End), 10)
}

// Cover grows s to include other. Spans of another file leave s as is.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start, s.End = min(s.Start, other.Start), max(s.End, other.End)
	}
	return s
}

func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}
