package server

import (
	"html/template"
	"net/http"

	"github.com/tuberank/tuberank/internal/adconfig"
	apperrors "github.com/tuberank/tuberank/internal/errors"
)

// indexTemplate is the minimal served document. The head snippet is the
// AdSense loader tag held by the injector; it is empty until activation.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TubeRank</title>
{{.HeadSnippet}}
</head>
<body>
<h1>TubeRank</h1>
<p>Generation API is served under /api/v1.</p>
{{range .Units}}<ins class="adsbygoogle" data-ad-client="{{.Client}}" data-ad-slot="{{.Slot}}" data-ad-format="{{.Format}}"></ins>
{{end}}</body>
</html>
`))

type indexData struct {
	HeadSnippet template.HTML
	Units       []adUnit
}

type adUnit struct {
	Client string
	Slot   string
	Format string
}

// IndexHandler serves the document root. Ad units appear only for
// placements that pass the render rules, and the loader tag only after
// the configuration has activated it.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	data := indexData{}

	if s.injector != nil {
		data.HeadSnippet = template.HTML(s.injector.Snippet())
	}

	if s.adsSvc != nil {
		settings := s.adsSvc.Settings()
		for _, key := range adconfig.PlacementKeys() {
			if !settings.ShouldRender(key) {
				continue
			}
			placement := settings.Placements[key]
			data.Units = append(data.Units, adUnit{
				Client: settings.PublisherID,
				Slot:   placement.SlotID,
				Format: string(placement.Format),
			})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		HandleError(w, r, apperrors.NewInternalError("failed to render index"))
	}
}
