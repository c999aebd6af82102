package trajectory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/rkode/internal/dynamo"
)

// CSV writes a header row "t,y0,..." followed by one row per record.
type CSV struct {
	w       *csv.Writer
	order   int
	started bool
}

func NewCSV(w io.Writer, order int) *CSV {
	return &CSV{w: csv.NewWriter(w), order: order}
}

func (s *CSV) Record(t float64, y dynamo.State) error {
	if len(y) != s.order {
		return fmt.Errorf("csv sink: record has %d components, header has %d", len(y), s.order)
	}
	if !s.started {
		header := []string{"t"}
		for i := 0; i < s.order; i++ {
			header = append(header, fmt.Sprintf("y%d", i))
		}
		if err := s.w.Write(header); err != nil {
			return err
		}
		s.started = true
	}

	row := make([]string, 0, len(y)+1)
	row = append(row, formatFloat(t))
	for _, v := range y {
		row = append(row, formatFloat(v))
	}
	if err := s.w.Write(row); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *CSV) Flush() error {
	s.w.Flush()
	return s.w.Error()
}

// ReadCSV parses a table written by CSV (or the text format with a comma
// separator) back into a Trajectory.
func ReadCSV(r io.Reader) (*Trajectory, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{}
	if len(records) < 2 {
		return traj, nil
	}

	order := len(records[0]) - 1
	for i, record := range records[1:] {
		if len(record) != order+1 {
			return nil, fmt.Errorf("row %d: %d fields, want %d", i+1, len(record), order+1)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		state := make(dynamo.State, order)
		for j := 0; j < order; j++ {
			state[j], err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		traj.Times = append(traj.Times, t)
		traj.States = append(traj.States, state)
	}

	return traj, nil
}
