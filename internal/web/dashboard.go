package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"protocol-zero/internal/storage"
)

//go:embed dashboard.html
var dashboardFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(dashboardFS, "dashboard.html"))

type dashboardData struct {
	Count   int
	History []storage.Event

	// Pre-marshalled series for the two Chart.js charts.
	VerdictLabels template.JS
	VerdictValues template.JS
	HourValues    template.JS
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := s.store.CountEvents(ctx)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	history, err := s.store.RecentEvents(ctx, 5)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	verdicts, err := s.store.VerdictCounts(ctx)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	hours, err := s.store.HourHistogram(ctx)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	labels := make([]string, 0, len(verdicts))
	values := make([]int, 0, len(verdicts))
	for label, n := range verdicts {
		labels = append(labels, label)
		values = append(values, n)
	}

	data := dashboardData{
		Count:         count,
		History:       history,
		VerdictLabels: marshalJS(labels),
		VerdictValues: marshalJS(values),
		HourValues:    marshalJS(hours[:]),
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("rendering dashboard")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func marshalJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return template.JS(b)
}
