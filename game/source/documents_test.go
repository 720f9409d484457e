package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/knight-board/game/engine"
)

func TestDecodeBoard(t *testing.T) {
	board, err := DecodeBoard([]byte(`{"width":5,"height":4,"obstacles":[{"x":1,"y":3}],"name":"ignored"}`))
	require.NoError(t, err)

	assert.Equal(t, 5, board.Width())
	assert.Equal(t, 4, board.Height())
	assert.Equal(t, []engine.Coordinates{{X: 1, Y: 3}}, board.Obstacles())
}

func TestDecodeBoardWithoutObstacles(t *testing.T) {
	board, err := DecodeBoard([]byte(`{"width":2,"height":2}`))
	require.NoError(t, err)
	assert.Empty(t, board.Obstacles())
}

func TestDecodeBoardRejects(t *testing.T) {
	for name, data := range map[string]string{
		"not json":       `{"width":`,
		"missing height": `{"width":3}`,
		"zero width":     `{"width":0,"height":3}`,
		"negative":       `{"width":3,"height":-1}`,
		"wrong type":     `{"width":"3","height":3}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBoard([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestDecodeCommands(t *testing.T) {
	commands, err := DecodeCommands([]byte(`{"commands":["START 0,0,EAST","MOVE 2"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"START 0,0,EAST", "MOVE 2"}, commands)

	commands, err = DecodeCommands([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, commands)

	_, err = DecodeCommands([]byte(`{"commands":"MOVE 1"}`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestNewBoardDocument(t *testing.T) {
	board := engine.NewBoard(3, 2, []engine.Coordinates{{X: 1, Y: 1}})
	doc := NewBoardDocument(board)

	rebuilt, err := doc.Board()
	require.NoError(t, err)
	assert.Equal(t, board.Obstacles(), rebuilt.Obstacles())
	assert.Equal(t, 3, rebuilt.Width())
}
