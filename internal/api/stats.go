package api

import (
	"net/http"

	"github.com/Pasindu991182/food-delivery-system/internal/seqid"
	"github.com/Pasindu991182/food-delivery-system/internal/store"
)

// statsResponse is the JSON response for GET /api/stats.
type statsResponse struct {
	*store.Stats
	Day        string            `json:"day"`
	LastIssued map[string]string `json:"last_issued"`
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		s.writeStoreError(w, err, "stats", "get")
		return
	}

	day := seqid.Prefix(s.now())
	last := make(map[string]string)
	for _, kind := range seqid.DefaultRegistry().List() {
		id, err := s.store.LastIssued(r.Context(), kind, day)
		if err != nil {
			s.writeStoreError(w, err, "stats", "get")
			return
		}
		if id != "" {
			last[kind.Name] = id
		}
	}

	s.writeJSON(w, http.StatusOK, statsResponse{
		Stats:      stats,
		Day:        day,
		LastIssued: last,
	})
}
