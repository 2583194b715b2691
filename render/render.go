// Package render turns page state into HTML.
package render

import (
	"embed"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/mrz1836/go-sanitize"

	"filut/finder"
	"filut/models"
	"filut/page"
)

//go:embed static
var Static embed.FS

// CloseLabel is the text of the button that closes the menu dialog.
const CloseLabel = "Sulje"

var templates = template.Must(template.New("filut").Funcs(template.FuncMap{
	"join":       strings.Join,
	"phoneLink":  PhoneLink,
	"all":        func() string { return finder.AllCities },
	"closeLabel": func() string { return CloseLabel },
}).Parse(pageTemplate + rowsTemplate + optionsTemplate + dialogTemplate))

const rowsTemplate = `{{define "rows"}}{{range .}}<tr data-id="{{.Restaurant.ID}}"{{if .Highlighted}} class="highlight"{{end}}><td>{{.Restaurant.Name}}</td><td>{{.Restaurant.Address}}</td></tr>
{{end}}{{end}}`

const optionsTemplate = `{{define "options"}}<option value="{{all}}"{{if eq .Active all}} selected{{end}}>Kaikki</option>
{{range .Cities}}<option value="{{.}}"{{if eq . $.Active}} selected{{end}}>{{.}}</option>
{{end}}{{end}}`

const dialogTemplate = `{{define "dialog"}}
<h1>{{.Restaurant.Name}}</h1>
<p>{{.Restaurant.Address}}, {{.Restaurant.PostalCode}} {{.Restaurant.City}}</p>
<p>{{.Restaurant.Company}} {{phoneLink .Restaurant.Phone}}</p>
<ul>
{{range .Menu.Courses}}<li>{{.Name}} - {{.Price}} ({{join .Diets ", "}})</li>
{{end}}</ul>
<form method="dialog">
<button>{{closeLabel}}</button>
</form>
{{end}}`

const pageTemplate = `{{define "page"}}<!doctype html>
<html lang="fi">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Ravintolat</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" integrity="sha256-p4NxAoJBhIIN+hmNHrzRCf9tD/miZyoHS5obTRR9BMY=" crossorigin="">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js" integrity="sha256-20nQCchB9co0qIjJZRGuk2/Z9VM+kNiyxNV/XN/WPeE=" crossorigin=""></script>
<style>
#map { height: 400px; }
tr.highlight { background: #ffd; }
#restaurant-table tbody tr { cursor: pointer; }
</style>
</head>
<body data-session="{{.SessionID}}">
<main>
<h1>Ravintolat</h1>
<div id="map"></div>
<label for="city-filter">Kaupunki</label>
<select id="city-filter">
{{template "options" .Options}}</select>
<table id="restaurant-table">
<thead><tr><th>Nimi</th><th>Osoite</th></tr></thead>
<tbody>
{{template "rows" .Rows}}</tbody>
</table>
<dialog id="restaurant-dialog"></dialog>
</main>
<script>window.filutMap = {{.Map}};</script>
<script src="/static/app.js" defer></script>
</body>
</html>
{{end}}`

type optionsData struct {
	Cities []string
	Active string
}

type pageData struct {
	SessionID string
	Options   optionsData
	Rows      []page.Row
	Map       page.Map
}

// Page writes the complete document for a freshly loaded session.
func Page(w io.Writer, v page.View) error {
	return templates.ExecuteTemplate(w, "page", pageData{
		SessionID: v.SessionID,
		Options:   optionsData{Cities: v.Cities, Active: v.Filter},
		Rows:      v.Rows,
		Map:       v.Map,
	})
}

// TableBody writes the rows of the restaurant table, one per row, with
// the restaurant name and address.
func TableBody(w io.Writer, rows []page.Row) error {
	return templates.ExecuteTemplate(w, "rows", rows)
}

// CityOptions writes the options of the city selection: "all" first,
// then one option per city.
func CityOptions(w io.Writer, cities []string, active string) error {
	return templates.ExecuteTemplate(w, "options", optionsData{Cities: cities, Active: active})
}

// Dialog writes the full content of the menu dialog.
func Dialog(w io.Writer, d page.Dialog) error {
	return templates.ExecuteTemplate(w, "dialog", d)
}

// CleanPhone strips everything but digits from a phone number, keeping a
// leading plus sign.
func CleanPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	prefix := ""
	if strings.HasPrefix(phone, "+") {
		prefix = "+"
	}
	return prefix + sanitize.Numeric(phone)
}

// PhoneLink returns a tel: link for phone, or nothing when the restaurant
// has no phone number.
func PhoneLink(phone string) template.HTML {
	if phone == "" || phone == models.NoPhone {
		return ""
	}
	n := html.EscapeString(CleanPhone(phone))
	if n == "" {
		return ""
	}
	return template.HTML(`<a href="tel:` + n + `">` + n + `</a>`)
}
