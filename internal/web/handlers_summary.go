package web

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/orderdesk/internal/core"
	"github.com/JonMunkholm/orderdesk/internal/logging"
	"github.com/JonMunkholm/orderdesk/internal/web/templates"
)

// utf8BOM makes Excel open the export as UTF-8 instead of the system code page.
const utf8BOM = "\ufeff"

type healthResponse struct {
	Status string `json:"status"`
	core.Stats
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Stats: s.session.Stats()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rows := s.session.Summary()
	if rows == nil {
		rows = []core.SummaryRow{}
	}
	writeJSON(w, r, http.StatusOK, rows)
}

// handleSummaryPage renders the HTML summary table.
func (s *Server) handleSummaryPage(w http.ResponseWriter, r *http.Request) {
	page := templates.SummaryPage(templates.SummaryParams{
		Rows:  s.session.Summary(),
		Stats: s.session.Stats(),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render summary page", "error", err)
	}
}

// handleExport streams the summary as a CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	date := s.now().Format("2006-01-02")

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", contentDisposition("заказы_"+date+".csv", "orders_"+date+".csv"))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(utf8BOM)); err != nil {
		logging.FromContext(r.Context()).Warn("export write", "error", err)
		return
	}
	if err := s.session.WriteExport(w); err != nil {
		logging.FromContext(r.Context()).Warn("export write", "error", err)
	}
}

// contentDisposition builds an attachment header carrying an ASCII fallback
// name and the RFC 5987 encoded UTF-8 name.
func contentDisposition(filename, fallback string) string {
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(filename))
}
