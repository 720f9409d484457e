// Package report turns run outcomes into the JSON result document.
//
// A successful run is reported as
//
//	{"position":{"x":1,"y":2,"direction":"NORTH"},"status":"SUCCESS"}
//
// and a failed run carries only its status:
//
//	{"status":"OUT_OF_THE_BOARD"}
//
// Write sends successful documents to the result stream and failures to the
// error stream.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wricardo/knight-board/game/engine"
)

// Position is the final knight placement in the result document
type Position struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// Document is the result document of a run
type Document struct {
	Position *Position `json:"position,omitempty"`
	Status   string    `json:"status"`
}

// FromOutcome builds the result document for an outcome
func FromOutcome(outcome engine.Outcome) Document {
	doc := Document{Status: outcome.Status.String()}
	if outcome.IsSuccess() {
		p := outcome.Placement
		doc.Position = &Position{
			X:         p.Coordinates.X,
			Y:         p.Coordinates.Y,
			Direction: p.Direction.String(),
		}
	}
	return doc
}

// Succeeded reports whether the document describes a successful run
func (d Document) Succeeded() bool {
	return d.Status == engine.StatusSuccess.String()
}

// Outcome converts the document back into an engine outcome
func (d Document) Outcome() (engine.Outcome, error) {
	status, err := engine.ParseStatus(d.Status)
	if err != nil {
		return engine.Outcome{}, err
	}
	if status != engine.StatusSuccess {
		return engine.Failed(status), nil
	}
	if d.Position == nil {
		return engine.Outcome{}, fmt.Errorf("success document without position")
	}
	dir, err := engine.ParseDirection(d.Position.Direction)
	if err != nil {
		return engine.Outcome{}, err
	}
	return engine.Succeeded(engine.Placement{
		Coordinates: engine.Coordinates{X: d.Position.X, Y: d.Position.Y},
		Direction:   dir,
	}), nil
}

// Write encodes the document as a single JSON line. Successful documents go
// to out, failures to errOut.
func Write(out, errOut io.Writer, doc Document) error {
	w := out
	if !doc.Succeeded() {
		w = errOut
	}
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
