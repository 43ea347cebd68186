// Package compose renders the Stylus userstyle document from compiled themes.
//
// Rendering is pure: the same document always produces the same text, so
// recomposing after a rebuild rewrites the output file without drift.
package compose

import (
	"errors"
	"regexp"
	"strings"
	"text/template"

	"github.com/jmylchreest/themesmith/internal/theme"
)

// ErrNoDomain is returned when the document has no site scope.
var ErrNoDomain = errors.New("userstyle domain is empty")

// Meta is the ==UserStyle== metadata header.
type Meta struct {
	Name        string
	Namespace   string
	Version     string
	Description string
	Author      string
}

// Block is one compiled theme placed into the document.
type Block struct {
	Theme string
	CSS   string
}

// Document is everything Compose needs.
type Document struct {
	Meta           Meta
	Domain         string
	RewriteClasses bool
	Light          Block
	Dark           Block
}

var themeClass = regexp.MustCompile(`\.theme--(light|dark)--[A-Za-z0-9_-]+`)

// RewriteClasses replaces every .theme--<mode>--<name> selector with the
// generic .theme--<mode> class, so the site's own mode switch activates the
// theme. Both modes are rewritten wherever they appear.
func RewriteClasses(css string) string {
	return themeClass.ReplaceAllString(css, ".theme--$1")
}

const header = `/* ==UserStyle==
@name           {{.Meta.Name}}
@namespace      {{.Meta.Namespace}}
@version        {{.Meta.Version}}
@description    {{.Meta.Description}}
@author         {{.Meta.Author}}
==/UserStyle== */
`

var documentTmpl = template.Must(template.New("document").Parse(header + `
{{range .Blocks -}}
/* Theme: {{.Name}} ({{.Mode}}) */

{{.CSS}}

{{end -}}
@-moz-document domain("{{.Domain}}") {
  /* Custom rules */
}
`))

var concatTmpl = template.Must(template.New("concat").Parse(header + `
{{range .Blocks -}}
/* Theme: {{.Name}} */

{{.CSS}}

{{end -}}
@-moz-document domain("{{.Domain}}") {
  /* Custom rules */
}
`))

type renderBlock struct {
	Name string
	Mode string
	CSS  string
}

type renderData struct {
	Meta   Meta
	Domain string
	Blocks []renderBlock
}

// Compose renders the userstyle for a light/dark pair: metadata header,
// the light block, the dark block, then the site wrapper with an empty
// custom rules section. Blocks stay at top level so @import and @charset
// rules emitted by the compiler remain valid.
func Compose(doc Document) (string, error) {
	if strings.TrimSpace(doc.Domain) == "" {
		return "", ErrNoDomain
	}

	data := renderData{Meta: doc.Meta, Domain: doc.Domain}
	for _, v := range theme.Variants {
		b := doc.Light
		if v == theme.VariantDark {
			b = doc.Dark
		}
		css := b.CSS
		if doc.RewriteClasses {
			css = RewriteClasses(css)
		}
		data.Blocks = append(data.Blocks, renderBlock{
			Name: b.Theme,
			Mode: v.String(),
			CSS:  strings.TrimRight(css, " \t\r\n"),
		})
	}

	return render(documentTmpl, data)
}

// ComposeAll concatenates every block in the given order, with no mode banner and
// without class rewriting, followed by an empty site wrapper.
//
// Deprecated: superseded by Compose, which renders a selected pair.
func ComposeAll(meta Meta, domain string, blocks []Block) (string, error) {
	if strings.TrimSpace(domain) == "" {
		return "", ErrNoDomain
	}

	data := renderData{Meta: meta, Domain: domain}
	for _, b := range blocks {
		data.Blocks = append(data.Blocks, renderBlock{
			Name: b.Theme,
			CSS:  strings.TrimRight(b.CSS, " \t\r\n"),
		})
	}
	return render(concatTmpl, data)
}

func render(tmpl *template.Template, data renderData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
