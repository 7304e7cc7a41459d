package config

import (
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Field names used in validation errors.
const (
	FieldTheta  = "theta"
	FieldLength = "length"
	FieldDt     = "dt"
	FieldSteps  = "steps"
)

const (
	MsgTheta  = "Por favor, ingrese un valor válido para el ángulo."
	MsgLength = "Por favor, ingrese una longitud positiva."
	MsgDt     = "Por favor, ingrese un paso de tiempo positivo."
	MsgSteps  = "Por favor, ingrese un número válido de pasos."
)

// Input is the raw text of the simulation form.
type Input struct {
	Angle    string
	Length   string
	TimeStep string
	Steps    string
}

// FromConfig renders a typed config back into form text.
func FromConfig(c dynamo.Config) Input {
	return Input{
		Angle:    strconv.FormatFloat(c.InitialAngleDeg, 'g', -1, 64),
		Length:   strconv.FormatFloat(c.Length, 'g', -1, 64),
		TimeStep: strconv.FormatFloat(c.TimeStep, 'g', -1, 64),
		Steps:    strconv.Itoa(c.Steps),
	}
}

// Parse converts form text into a config. Every rejected field is
// reported in the returned *dynamo.ValidationError.
func Parse(in Input) (dynamo.Config, error) {
	verr := &dynamo.ValidationError{}
	var cfg dynamo.Config

	if v, ok := parseFloat(in.Angle); ok && v >= 0 {
		cfg.InitialAngleDeg = v
	} else {
		verr.Add(FieldTheta, MsgTheta)
	}

	if v, ok := parseFloat(in.Length); ok && v > 0 {
		cfg.Length = v
	} else {
		verr.Add(FieldLength, MsgLength)
	}

	if v, ok := parseFloat(in.TimeStep); ok && v > 0 {
		cfg.TimeStep = v
	} else {
		verr.Add(FieldDt, MsgDt)
	}

	if v, err := strconv.Atoi(strings.TrimSpace(in.Steps)); err == nil && v > 0 {
		cfg.Steps = v
	} else {
		verr.Add(FieldSteps, MsgSteps)
	}

	if err := verr.OrNil(); err != nil {
		return dynamo.Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants of an already typed config.
func Validate(c dynamo.Config) error {
	verr := &dynamo.ValidationError{}
	if !finite(c.InitialAngleDeg) || c.InitialAngleDeg < 0 {
		verr.Add(FieldTheta, MsgTheta)
	}
	if !finite(c.Length) || c.Length <= 0 {
		verr.Add(FieldLength, MsgLength)
	}
	if !finite(c.TimeStep) || c.TimeStep <= 0 {
		verr.Add(FieldDt, MsgDt)
	}
	if c.Steps <= 0 {
		verr.Add(FieldSteps, MsgSteps)
	}
	return verr.OrNil()
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
