package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/knight-board/game/engine"
)

func TestFromOutcomeSuccess(t *testing.T) {
	outcome := engine.Succeeded(engine.Placement{
		Coordinates: engine.Coordinates{X: 1, Y: 2},
		Direction:   engine.East,
	})

	data, err := json.Marshal(FromOutcome(outcome))
	require.NoError(t, err)
	assert.JSONEq(t, `{"position":{"x":1,"y":2,"direction":"EAST"},"status":"SUCCESS"}`, string(data))
}

func TestFromOutcomeFailureOmitsPosition(t *testing.T) {
	for _, status := range []engine.Status{
		engine.StatusInvalidStartPosition,
		engine.StatusOutOfTheBoard,
		engine.StatusGenericError,
	} {
		data, err := json.Marshal(FromOutcome(engine.Failed(status)))
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"`+status.String()+`"}`, string(data))
	}
}

func TestWriteSelectsStream(t *testing.T) {
	var out, errOut bytes.Buffer

	success := FromOutcome(engine.Succeeded(engine.Placement{Direction: engine.North}))
	require.NoError(t, Write(&out, &errOut, success))
	assert.Contains(t, out.String(), `"status":"SUCCESS"`)
	assert.Empty(t, errOut.String())

	out.Reset()
	require.NoError(t, Write(&out, &errOut, FromOutcome(engine.Failed(engine.StatusOutOfTheBoard))))
	assert.Empty(t, out.String())
	assert.Equal(t, "{\"status\":\"OUT_OF_THE_BOARD\"}\n", errOut.String())
}

func TestDocumentOutcome(t *testing.T) {
	doc := Document{Position: &Position{X: 3, Y: 4, Direction: "WEST"}, Status: "SUCCESS"}
	outcome, err := doc.Outcome()
	require.NoError(t, err)
	require.True(t, outcome.IsSuccess())
	assert.Equal(t, engine.Coordinates{X: 3, Y: 4}, outcome.Placement.Coordinates)
	assert.Equal(t, engine.West, outcome.Placement.Direction)

	_, err = Document{Status: "SUCCESS"}.Outcome()
	assert.Error(t, err)

	_, err = Document{Status: "LOST"}.Outcome()
	assert.ErrorIs(t, err, engine.ErrUnknownStatus)
}
