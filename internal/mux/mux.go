package mux

import (
	"net/http"

	"blackjack-server/pkg/history"
	"blackjack-server/pkg/room"
	gmux "github.com/gorilla/mux"
)

// Table is the running table the API reports on
type Table struct {
	PitBoss *room.PitBoss
	Dealer  *room.Dealer
	Rounds  *history.Memory
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	table   Table
}

// NewMux returns a new HTTP mux
func NewMux(version string, table Table) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		table:   table,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
	r.Methods(http.MethodGet).Path("/rounds").Handler(this.getRounds())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}
