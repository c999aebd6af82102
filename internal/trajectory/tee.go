package trajectory

import "github.com/san-kum/rkode/internal/dynamo"

// Tee forwards every record to each sink in order and stops at the first error.
type Tee []dynamo.Sink

func (t Tee) Record(tm float64, y dynamo.State) error {
	for _, s := range t {
		if err := s.Record(tm, y); err != nil {
			return err
		}
	}
	return nil
}
