package web

import (
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/vitos/crypto_gainers/internal/domain"
	"go.uber.org/zap"
)

// Templates
var templates *template.Template

func InitTemplates(dir string) error {
	var err error
	templates, err = template.ParseGlob(filepath.Join(dir, "*.html"))
	return err
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	current, previous := s.tracker.Snapshots()

	overlap := make(map[string]bool)
	for sym := range domain.Overlap(current, previous) {
		overlap[sym] = true
	}

	formatTS := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("15:04:05 MST")
	}

	data := map[string]interface{}{
		"Current":     current.Entries,
		"Previous":    previous.Entries,
		"CurrentTS":   formatTS(current.CapturedAt),
		"PreviousTS":  formatTS(previous.CapturedAt),
		"Overlap":     overlap,
		"HasPrevious": !previous.IsEmpty(),
	}

	if err := templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("Template error", zap.Error(err))
		http.Error(w, "Internal Server Error", 500)
	}
}
