package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrEmptyDeck is returned when every slide was dropped during the session.
	ErrEmptyDeck = errors.New("tui: every slide was skipped")
)
