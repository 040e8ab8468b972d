package web

import (
	"embed"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
)

//go:embed tpl/*.tmpl
var tplFS embed.FS

type Renderer struct {
	t *template.Template
}

func funcs() template.FuncMap {
	m := sprig.TxtFuncMap()
	m["comma"] = func(n int) string { return humanize.Comma(int64(n)) }
	return m
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("root").Funcs(funcs()).ParseFS(tplFS, "tpl/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	return r.t.ExecuteTemplate(w, name, data)
}
