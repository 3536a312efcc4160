package room

import "errors"

// ErrTableFull is logged when a connection arrives and every seat is taken
var ErrTableFull = errors.New("table is full")

// ErrNoPlayers is returned when a round is requested with nobody seated
var ErrNoPlayers = errors.New("no active seats")
