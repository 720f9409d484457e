package source

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wricardo/knight-board/game/engine"
)

// ErrInvalidDocument is wrapped by decode failures
var ErrInvalidDocument = errors.New("invalid document")

// BoardDocument is the wire form of a board
type BoardDocument struct {
	Width     *int                 `json:"width"`
	Height    *int                 `json:"height"`
	Obstacles []engine.Coordinates `json:"obstacles"`
}

// NewBoardDocument converts a board back into its wire form
func NewBoardDocument(board *engine.Board) BoardDocument {
	w, h := board.Width(), board.Height()
	return BoardDocument{Width: &w, Height: &h, Obstacles: board.Obstacles()}
}

// Validate checks that both dimensions are present and positive
func (d BoardDocument) Validate() error {
	if d.Width == nil || d.Height == nil {
		return fmt.Errorf("%w: board width and height are required", ErrInvalidDocument)
	}
	if *d.Width <= 0 || *d.Height <= 0 {
		return fmt.Errorf("%w: board dimensions must be positive, got %dx%d", ErrInvalidDocument, *d.Width, *d.Height)
	}
	return nil
}

// Board builds the engine board
func (d BoardDocument) Board() (*engine.Board, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return engine.NewBoard(*d.Width, *d.Height, d.Obstacles), nil
}

// CommandsDocument is the wire form of an instruction list
type CommandsDocument struct {
	Commands []string `json:"commands"`
}

// DecodeBoard parses and validates a board document
func DecodeBoard(data []byte) (*engine.Board, error) {
	var doc BoardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: board: %v", ErrInvalidDocument, err)
	}
	return doc.Board()
}

// DecodeCommands parses an instruction document. A missing or empty list is
// not a decode error; the interpreter reports it.
func DecodeCommands(data []byte) ([]string, error) {
	var doc CommandsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: commands: %v", ErrInvalidDocument, err)
	}
	return doc.Commands, nil
}
