package measurements

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError describe el primer campo inválido. errors.Is(err, ErrInvalidInput) == true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// CreateRequest es el cuerpo de POST /create (y de los mensajes MQTT).
// Punteros en los números para distinguir "no enviado" de 0.
type CreateRequest struct {
	Date           string   `json:"date" example:"January 05, 2024 at 02:30PM"`
	Unit           string   `json:"unit" enums:"kg,lb"`
	Weight         *float64 `json:"weight"`
	FatMass        *float64 `json:"fatMass"`
	FatMassPercent *float64 `json:"fatMassPercent"`
	LeanMass       *float64 `json:"leanMass"`
}

// DecodeCreateRequest lee un único objeto JSON.
func DecodeCreateRequest(r io.Reader) (CreateRequest, error) {
	var req CreateRequest
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return CreateRequest{}, &ValidationError{Field: "body", Reason: "invalid json"}
	}
	return req, nil
}

// ParseCreateRequest es DecodeCreateRequest + Measurement sobre bytes (MQTT).
func ParseCreateRequest(payload []byte) (Measurement, error) {
	req, err := DecodeCreateRequest(bytes.NewReader(payload))
	if err != nil {
		return Measurement{}, err
	}
	return req.Measurement()
}

// Measurement valida y convierte el request.
func (r CreateRequest) Measurement() (Measurement, error) {
	date, err := ParseDisplayDate(r.Date)
	if err != nil {
		return Measurement{}, &ValidationError{Field: "date", Reason: err.Error()}
	}

	unit, err := ParseUnit(r.Unit)
	if err != nil {
		return Measurement{}, &ValidationError{Field: "unit", Reason: err.Error()}
	}

	weight, err := requiredMass("weight", r.Weight)
	if err != nil {
		return Measurement{}, err
	}
	fatMass, err := requiredMass("fatMass", r.FatMass)
	if err != nil {
		return Measurement{}, err
	}
	leanMass, err := requiredMass("leanMass", r.LeanMass)
	if err != nil {
		return Measurement{}, err
	}
	percent, err := requiredMass("fatMassPercent", r.FatMassPercent)
	if err != nil {
		return Measurement{}, err
	}
	if percent > 100 {
		return Measurement{}, &ValidationError{Field: "fatMassPercent", Reason: "must be between 0 and 100"}
	}

	return Measurement{
		Date:           date,
		Unit:           unit,
		Weight:         weight,
		FatMass:        fatMass,
		FatMassPercent: percent,
		LeanMass:       leanMass,
	}, nil
}

func requiredMass(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, &ValidationError{Field: field, Reason: "is required"}
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0, &ValidationError{Field: field, Reason: "must be a non-negative number"}
	}
	return *v, nil
}
