package server

import (
	"net/http"

	"github.com/alnah/marrow"
	"github.com/alnah/marrow/internal/fileutil"
)

// handleOpen follows a link clicked in view: web URLs go to the system
// browser, documents open in a new view and other local files are served
// as is.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, ok := s.views.get(q.Get("view"))
	if !ok {
		jsonError(w, "unknown view", http.StatusNotFound)
		return
	}

	link := marrow.ClassifyLink(q.Get("href"), view.BaseDir)
	s.log.Debug("link", "href", q.Get("href"), "action", link.Action.String())

	switch link.Action {
	case marrow.LinkExternal:
		if err := s.opener.Open(link.Target); err != nil {
			s.log.Warn("opening external link failed", "url", link.Target, "error", err)
			http.Redirect(w, r, link.Target, http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case marrow.LinkLocal:
		if !fileutil.IsDocument(link.Target) {
			http.ServeFile(w, r, link.Target)
			return
		}
		id := s.views.add(s.viewer.Open(link.Target))
		http.Redirect(w, r, "/view/"+id, http.StatusFound)

	case marrow.LinkAllow:
		w.WriteHeader(http.StatusNoContent)

	default:
		jsonError(w, "link blocked", http.StatusForbidden)
	}
}
