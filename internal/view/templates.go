package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/noah-isme/userdir/internal/banner"
	"github.com/noah-isme/userdir/web"
)

// Site carries the chrome rendered around every page.
type Site struct {
	Title         string
	FooterMessage string
	FooterLink    string
	FooterURL     string
}

// DefaultSite is used when NewEngine receives an empty Site.
var DefaultSite = Site{
	Title:         "User Directory",
	FooterMessage: "This project is brought to you by A Peckish Salty",
	FooterLink:    "TestDriven.io",
	FooterURL:     "https://testdriven.io",
}

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
	site      Site
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Banner      banner.Notification
	CurrentPath string
	Site        Site
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine(site Site) (*Engine, error) {
	if site.Title == "" {
		site.Title = DefaultSite.Title
	}
	if site.FooterMessage == "" {
		site.FooterMessage = DefaultSite.FooterMessage
	}
	if site.FooterLink == "" {
		site.FooterLink = DefaultSite.FooterLink
		site.FooterURL = DefaultSite.FooterURL
	}
	funcMap := template.FuncMap{
		"bannerColor": func(c banner.Category) string {
			return c.Color()
		},
		"userPath": func(id int64) string {
			return "/users/" + strconv.FormatInt(id, 10)
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl, site: site}, nil
}

// Site returns the chrome settings in use.
func (e *Engine) Site() Site {
	return e.site
}

// Render executes a named template and writes it with status.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	data.Site = e.site
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
