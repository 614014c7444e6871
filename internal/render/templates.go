package render

import (
	"html/template"
	"strings"
)

var templates = template.Must(template.New("sections").Parse(`
{{define "bio"}}{{range .}}<p class="hero-details">{{.}}</p>{{end}}{{end}}

{{define "svg"}}<svg viewBox="{{.ViewBox}}" fill="{{.Fill}}"{{if .HasStroke}} stroke="{{.Stroke}}" stroke-width="{{.StrokeWidth}}"{{end}}>{{.Content}}</svg>{{end}}

{{define "social"}}{{range .}}<a href="{{.URL}}" target="_blank" class="social-link" aria-label="{{.Name}}">{{template "svg" .Icon}}{{.Name}}</a>{{end}}{{end}}

{{define "about"}}{{range .Paragraphs}}<p>{{.}}</p>{{end}}{{if .Tags}}<div class="research-areas">{{range .Tags}}<div class="research-tag">{{.}}</div>{{end}}</div>{{end}}{{end}}

{{define "research"}}{{range .}}<div class="research-card"><div class="card-icon">{{template "svg" .Icon}}</div><h3>{{.Title}}</h3><p>{{.Description}}</p></div>{{end}}{{end}}

{{define "contact"}}{{if .Message}}<p>{{.Message}}</p>{{end}}{{if .Links}}<div class="contact-links">{{range .Links}}<a href="{{.URL}}"{{if not .Mail}} target="_blank"{{end}} class="contact-link">{{template "svg" .Icon}}{{.Name}}</a>{{end}}</div>{{end}}{{end}}

{{define "publications"}}{{range .Items}}<div class="publication-item"><div class="publication-image"><img src="{{.Image}}" alt="Publication thumbnail" onerror="this.onerror=null;this.src={{$.Fallback}}"></div><div class="publication-content"><h3 class="publication-title"><a href="{{.Link}}" target="_blank">{{.Title}}</a></h3><p class="publication-authors">{{.Authors}}</p><p class="publication-venue">{{.Venue}}</p><p class="publication-bib">{{.Bib}}</p></div></div>{{end}}{{end}}

{{define "publications-error"}}<p style="text-align: center; color: var(--text-secondary);">{{.}}</p>{{end}}
`))

func execute(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
