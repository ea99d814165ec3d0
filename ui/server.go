// Package ui serves a browser view of the grammars in a workspace.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ebnfpt/format"
	"github.com/dhamidi/ebnfpt/pt"
	"github.com/dhamidi/ebnfpt/workspace"
)

//go:embed static all:templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("ebnfpt.ui")

type Server struct {
	workspace  *workspace.Workspace
	staticFS   fs.FS
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

func NewServer(ws *workspace.Workspace) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	s := &Server{
		workspace:  ws,
		staticFS:   staticFS,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
	}
	s.funcMap = template.FuncMap{
		"rel": s.rel,
		"indent": func(depth int) string {
			return fmt.Sprintf("%.1fem", float64(depth)*1.5)
		},
		"products": func(f *workspace.File) int {
			if f.Tree == nil {
				return 0
			}
			return len(f.Tree.Root.ChildrenOfKind(pt.KindProduct))
		},
	}

	if _, err := template.New("").Funcs(s.funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /f/{path...}", s.handleFile)
	s.mux.HandleFunc("GET /sidebar", s.handleSidebar)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Errorf("render %s: %v", name, err)
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Debugf("render %s: %v", name, err)
	}
}

func (s *Server) rel(path string) string {
	rel, err := filepath.Rel(s.workspace.Root(), path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if err := s.workspace.ScanAll(); err != nil {
		http.Error(w, "scan failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Root  string
		Files []*workspace.File
	}{
		Root:  s.workspace.Root(),
		Files: s.workspace.Files(),
	}
	s.render(w, "index.html", data)
}

// Row is one node of a rendered tree.
type Row struct {
	Depth   int
	Kind    string
	Span    pt.Span
	Data    string
	Leaf    bool
	Partial bool
}

type FileViewData struct {
	File  *workspace.File
	Rows  []Row
	Error string
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.workspace.Root(), filepath.FromSlash(r.PathValue("path")))
	f := s.workspace.GetFile(path)
	if f == nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	if r.Header.Get("Accept") == "application/json" {
		if f.Tree == nil {
			http.Error(w, f.Err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := format.NewJSONEncoder(w, format.Partial(f.Err != nil)).Encode(f.Tree); err != nil {
			log.Errorf("encode %s: %v", path, err)
		}
		return
	}

	data := FileViewData{File: f}
	if f.Err != nil {
		data.Error = f.Err.Error()
	}
	if f.Tree != nil {
		pt.Walk(f.Tree.Root, f.Err != nil, func(n *pt.Node, partial bool) bool {
			data.Rows = append(data.Rows, Row{
				Depth:   f.Tree.Depth(n),
				Kind:    n.Kind.String(),
				Span:    n.Span,
				Data:    n.Data,
				Leaf:    n.IsLeaf(),
				Partial: partial,
			})
			return true
		})
	}
	s.render(w, "file.html", data)
}

// Symbol is a product found by the sidebar search.
type Symbol struct {
	Name string
	Path string
	Span pt.Span
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))

	const maxResults = 20

	var symbols []Symbol
	var totalMatches int
	for _, f := range s.workspace.Files() {
		if f.Tree == nil {
			continue
		}
		for _, product := range f.Tree.Root.ChildrenOfKind(pt.KindProduct) {
			lhs := product.LHS()
			if lhs == nil || !strings.Contains(strings.ToLower(lhs.Data), query) {
				continue
			}
			totalMatches++
			if len(symbols) < maxResults {
				symbols = append(symbols, Symbol{Name: lhs.Data, Path: f.Path, Span: product.Span})
			}
		}
	}

	data := struct {
		Symbols      []Symbol
		Query        string
		TotalMatches int
		HasMore      bool
	}{
		Symbols:      symbols,
		Query:        query,
		TotalMatches: totalMatches,
		HasMore:      totalMatches > maxResults,
	}
	s.render(w, "_sidebar.html", data)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFSType serves files from a directory on disk when present, falling
// back to the embedded copy.
type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
