package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"sync"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout.html"

// TemplateCache holds every page parsed together with the shared layout.
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: template.FuncMap{
			"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		},
	}
}

// Load parses the embedded templates.
func (tc *TemplateCache) Load() error {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return err
	}
	return tc.LoadFS(sub)
}

// LoadFS parses every page in fsys against layout.html.
func (tc *TemplateCache) LoadFS(fsys fs.FS) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	pages, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return err
	}
	for _, page := range pages {
		name := path.Base(page)
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New(layoutTemplate).Funcs(tc.funcs).ParseFS(fsys, layoutTemplate, page)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		tc.cache[name] = tmpl
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

// Render executes into a buffer first so a template error never leaves a
// half written page.
func (tc *TemplateCache) Render(w http.ResponseWriter, logger *zap.Logger, status int, name string, data any) {
	tmpl := tc.Get(name)
	if tmpl == nil {
		logger.Error("template not found", zap.String("template", name))
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
