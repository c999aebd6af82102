package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Text writes the plain table format:
//
//	t, y0, y1
//	0, 1, 0
//	0.1, 0.995, -0.1
//
// The header is written with the first record, so a run that fails
// validation leaves the destination untouched.
type Text struct {
	w       *bufio.Writer
	order   int
	started bool
}

func NewText(w io.Writer, order int) *Text {
	return &Text{w: bufio.NewWriter(w), order: order}
}

func (s *Text) Record(t float64, y dynamo.State) error {
	if len(y) != s.order {
		return fmt.Errorf("text sink: record has %d components, header has %d", len(y), s.order)
	}
	if !s.started {
		if err := s.header(); err != nil {
			return err
		}
		s.started = true
	}

	s.w.WriteString(formatFloat(t))
	for _, v := range y {
		s.w.WriteString(", ")
		s.w.WriteString(formatFloat(v))
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *Text) header() error {
	s.w.WriteString("t")
	for i := 0; i < s.order; i++ {
		fmt.Fprintf(s.w, ", y%d", i)
	}
	return s.w.WriteByte('\n')
}

func (s *Text) Flush() error { return s.w.Flush() }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
