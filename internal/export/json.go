package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/pendsim/internal/dynamo"
)

type Metadata struct {
	ID         string             `json:"id"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	ThetaDeg   float64            `json:"theta_deg"`
	Length     float64            `json:"length"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

type ExportData struct {
	Metadata
	Amplitude        float64     `json:"amplitude"`
	AngularFrequency float64     `json:"angular_frequency"`
	Period           float64     `json:"period"`
	Solution         string      `json:"solution"`
	Times            []float64   `json:"times"`
	States           [][]float64 `json:"states"`
}

// WriteJSON writes the run description together with the trajectory as
// indented JSON.
func WriteJSON(w io.Writer, meta Metadata, params dynamo.Params, traj dynamo.Trajectory) error {
	if len(traj) == 0 {
		return dynamo.ErrNoData
	}

	data := ExportData{
		Metadata:         meta,
		Amplitude:        params.Amplitude,
		AngularFrequency: params.AngularFrequency,
		Period:           params.Period,
		Solution:         params.Solution(),
		Times:            traj.Times(),
		States:           make([][]float64, len(traj)),
	}
	for i, s := range traj {
		data.States[i] = []float64{s.Theta, s.Omega}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
