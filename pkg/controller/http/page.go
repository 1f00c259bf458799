package http

import (
	_ "embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/herbal/pkg/domain/model"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Screen         model.Screen
	Alert          string
	Refresh        bool
	PreviewURL     template.URL
	ResultImageURL template.URL
	Focus          string
}

// focusElement maps a focus target to the element scrolled into view
var focusElement = map[model.Region]string{
	model.RegionResults: "resultsSection",
	model.RegionError:   "errorSection",
}

// imageURL lets data:image URLs through html/template, which would
// otherwise replace them. Anything else must be http(s).
func imageURL(u string) template.URL {
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"):
		return template.URL(u)
	default:
		return ""
	}
}

func renderPage(w http.ResponseWriter, r *http.Request, sess *session) {
	data := pageData{
		Screen: sess.view.Snapshot(),
		Alert:  sess.view.TakeAlert(),
	}
	// a detect just dispatched may not have switched to loading yet
	pending := r.URL.Query().Has("pending") && data.Screen.PreviewVisible
	data.Refresh = pending || data.Screen.LoadingVisible
	if data.Screen.Preview != nil {
		data.PreviewURL = imageURL(data.Screen.Preview.URL)
	}
	if data.Screen.Result != nil {
		data.ResultImageURL = imageURL(data.Screen.Result.Image)
	}
	data.Focus = focusElement[data.Screen.Focus]

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		ctxlog.From(r.Context()).Error("Failed to render page", "error", err)
	}
}
