package http

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/session"
)

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// gatePage is the data of the credential gate.
type gatePage struct {
	Error string
}

// appPage is the data of the main page.
type appPage struct {
	View session.View
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.container.Credential() == "" {
		s.renderPage(w, r, http.StatusOK, "gate", gatePage{})
		return
	}

	// The first paint shows the saved list; the live session takes over
	// once the websocket connects.
	sess := session.New(r.Context(), s.container, session.Config{})
	view := sess.View()
	sess.Close()

	s.renderPage(w, r, http.StatusOK, "app", appPage{View: view})
}

func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, "gate", gatePage{Error: "Invalid form submission."})
		return
	}

	if err := s.container.SetCredential(r.Context(), r.PostFormValue("api_key")); err != nil {
		s.renderPage(w, r, ErrorStatusCode(placefinder.ErrorCode(err)), "gate", gatePage{
			Error: placefinder.ErrorMessage(err),
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		Error(w, r, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fragments renders the live regions of the main page.
func (s *Server) fragments(view session.View) (*renderMessage, error) {
	msg := &renderMessage{
		Type:      "render",
		Query:       view.Query,
		QueryClears: view.QueryClears,
		Loading:     view.Loading,
		CanExport:   view.CanExport,
	}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"suggestions", &msg.Suggestions},
		{"places", &msg.Places},
		{"toasts", &msg.Toasts},
	} {
		var buf bytes.Buffer
		if err := s.tmpl.ExecuteTemplate(&buf, f.name, view); err != nil {
			return nil, err
		}
		*f.dst = buf.String()
	}
	return msg, nil
}
