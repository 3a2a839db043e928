package calendar

import (
	"fmt"
	"html/template"
	"io"
)

// htmlPage renders the calendar as one self-contained document; it is
// strictly a view over the same structure WriteJSON emits.
var htmlPage = template.Must(template.New("calendar").Funcs(template.FuncMap{
	"orDash": func(s *string) string {
		if s == nil {
			return "--:--"
		}
		return *s
	},
	"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; background: #10141c; color: #d8dee9; }
h1 { font-size: 1.3rem; }
table { border-collapse: collapse; font-size: 0.85rem; }
th, td { padding: 0.3rem 0.55rem; text-align: center; white-space: nowrap; }
th { background: #1b2230; position: sticky; top: 0; }
tr:nth-child(even) { background: #161c28; }
td.date { font-weight: 600; text-align: left; }
td.phase { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead>
<tr>
<th>Date</th><th>Sunrise</th><th>Solar Noon</th><th>Sunset</th>
<th>Civil Dawn</th><th>Civil Dusk</th>
<th>Nautical Dawn</th><th>Nautical Dusk</th>
<th>Astro Dawn</th><th>Astro Dusk</th>
<th>Moonrise</th><th>Moonset</th><th>Transit</th>
<th>Phase Events</th><th>Illumination</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td class="date">{{.Date}}</td>
<td>{{orDash .Sunrise}}</td><td>{{orDash .SolarNoon}}</td><td>{{orDash .Sunset}}</td>
<td>{{orDash .CivilDawn}}</td><td>{{orDash .CivilDusk}}</td>
<td>{{orDash .NauticalDawn}}</td><td>{{orDash .NauticalDusk}}</td>
<td>{{orDash .AstronomicalDawn}}</td><td>{{orDash .AstronomicalDusk}}</td>
<td>{{orDash .Moonrise}}</td><td>{{orDash .Moonset}}</td><td>{{orDash .MoonTransit}}</td>
<td class="phase">{{range .PhaseEvents}}{{.Kind}} {{.Local}} {{end}}</td>
<td>{{.PhaseEmoji}} {{pct .IlluminationPct}}</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// WriteHTML renders the rows as a standalone HTML table.
func WriteHTML(w io.Writer, title string, rows []Row) error {
	return htmlPage.Execute(w, struct {
		Title string
		Rows  []Row
	}{Title: title, Rows: rows})
}
