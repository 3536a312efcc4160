package mux

import (
	"net/http"

	"blackjack-server/pkg/history"
	"blackjack-server/pkg/room"
)

type tableResponse struct {
	Capacity     int              `json:"capacity"`
	Occupied     int              `json:"occupied"`
	Seats        []room.SeatState `json:"seats"`
	RoundsPlayed int64            `json:"roundsPlayed"`
}

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seats := m.table.PitBoss.Snapshot()
		occupied := 0
		for _, seat := range seats {
			if seat.Occupied {
				occupied++
			}
		}

		writeJSON(w, http.StatusOK, tableResponse{
			Capacity:     m.table.PitBoss.Capacity(),
			Occupied:     occupied,
			Seats:        seats,
			RoundsPlayed: m.table.Dealer.RoundsPlayed(),
		})
	}
}

type roundsResponse struct {
	Total  int64            `json:"total"`
	Rounds []*history.Round `json:"rounds"`
}

func (m *Mux) getRounds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusOK, roundsResponse{
			Total:  m.table.Rounds.Total(),
			Rounds: m.table.Rounds.Recent(int(start), rows),
		})
	}
}
