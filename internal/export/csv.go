package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// DefaultFilename is the name offered for a downloaded trajectory.
const DefaultFilename = "simulacion_pendulo.csv"

// ErrHeader is returned when a file does not start with Header.
var ErrHeader = errors.New("export: not a trajectory export (unexpected header)")

// Header is the fixed first row of every CSV export.
var Header = []string{"Tiempo (s)", "Ángulo (rad)", "Velocidad Angular (rad/s)"}

// WriteCSV writes the header and one row per sample, time with 2 decimals
// and angle/angular velocity with 4. An empty trajectory writes nothing
// and returns dynamo.ErrNoData.
func WriteCSV(w io.Writer, traj dynamo.Trajectory) error {
	if len(traj) == 0 {
		return dynamo.ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	row := make([]string, 3)
	for _, s := range traj {
		row[0] = strconv.FormatFloat(s.T, 'f', 2, 64)
		row[1] = strconv.FormatFloat(s.Theta, 'f', 4, 64)
		row[2] = strconv.FormatFloat(s.Omega, 'f', 4, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV export to path.
func WriteFile(path string, traj dynamo.Trajectory) error {
	if len(traj) == 0 {
		return dynamo.ErrNoData
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(file, traj); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadCSV parses a CSV export back into a trajectory, at the precision it
// was written with.
func ReadCSV(r io.Reader) (dynamo.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header: %w", dynamo.ErrNoData)
	}
	if !slices.Equal(records[0], Header) {
		return nil, fmt.Errorf("%w: got %q", ErrHeader, strings.Join(records[0], ","))
	}

	traj := make(dynamo.Trajectory, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [3]float64
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			vals[j] = v
		}
		traj = append(traj, dynamo.Sample{T: vals[0], Theta: vals[1], Omega: vals[2]})
	}

	return traj, nil
}
