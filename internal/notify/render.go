package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"jobwatch/internal/domain"
)

// RenderedMessage is a ready-to-send digest.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// Renderer turns the new-since-snapshot records into one digest mail.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("digest").Parse(digestHTMLTemplate))}
}

type digestJob struct {
	Rank     int
	Title    string
	Company  string
	Location string
	Score    int
	Distance string // preformatted "12.3 km · ~10 min", empty when unknown
	WebURL   string
}

type digestData struct {
	Count int
	Jobs  []digestJob
}

// Render produces the digest for the given new records. Callers skip sending
// when there is nothing new.
func (r *Renderer) Render(newJobs []domain.Job) (*RenderedMessage, error) {
	data := digestData{Count: len(newJobs)}
	for _, j := range newJobs {
		data.Jobs = append(data.Jobs, digestJob{
			Rank:     j.Rank,
			Title:    j.Title,
			Company:  j.Company,
			Location: j.Location,
			Score:    j.Score,
			Distance: formatDistance(j),
			WebURL:   j.WebURL,
		})
	}

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("render digest template: %w", err)
	}

	return &RenderedMessage{
		Subject: fmt.Sprintf("jobwatch: %d neue Treffer", data.Count),
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

func formatDistance(j domain.Job) string {
	if j.DistanceKm == nil {
		return ""
	}
	if j.TravelMin != nil {
		return fmt.Sprintf("%.1f km · ~%d min", *j.DistanceKm, *j.TravelMin)
	}
	return fmt.Sprintf("%.1f km", *j.DistanceKm)
}

func renderPlainText(data digestData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d neue Treffer seit dem letzten Snapshot\n", data.Count))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, j := range data.Jobs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", j.Rank, j.Title))
		sb.WriteString(fmt.Sprintf("   %s | %s | Score %d\n", j.Company, j.Location, j.Score))
		if j.Distance != "" {
			sb.WriteString("   " + j.Distance + "\n")
		}
		if j.WebURL != "" {
			sb.WriteString("   " + j.WebURL + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

const digestHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <title>jobwatch: {{.Count}} neue Treffer</title>
  <style>
    body { margin: 0; padding: 24px; background: #f3f4f6; font-family: -apple-system, "Segoe UI", Roboto, sans-serif; color: #111827; }
    .container { max-width: 640px; margin: 0 auto; background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; overflow: hidden; }
    .header { padding: 20px 24px; background: #1f2937; color: #fff; }
    .job { padding: 16px 24px; border-top: 1px solid #e5e7eb; }
    .title { font-weight: 600; }
    .meta { color: #6b7280; font-size: 13px; margin-top: 4px; }
    a { color: #2563eb; text-decoration: none; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.Count}} neue Treffer seit dem letzten Snapshot</div>
    {{range .Jobs}}
    <div class="job">
      <div class="title">{{.Rank}}. {{.Title}}</div>
      <div class="meta">{{.Company}} · {{.Location}} · Score {{.Score}}{{if .Distance}} · {{.Distance}}{{end}}</div>
      {{if .WebURL}}<div class="meta"><a href="{{.WebURL}}">In BA Jobsuche öffnen</a></div>{{end}}
    </div>
    {{end}}
  </div>
</body>
</html>`
