// Package render builds the static single-file HTML artifact for a product.
// The output is a pure function of its inputs: identical title and page
// sequence always produce byte-identical HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// Page is the slice of a document page the renderer needs. ContentHTML is
// trusted rich markup produced by the editor and is emitted verbatim; titles
// are escaped on insertion.
type Page struct {
	Title       string
	Slug        string
	ContentHTML string
}

type pageView struct {
	Title   string
	Slug    string
	Content template.HTML
}

type siteView struct {
	Title string
	Pages []pageView
}

const siteTemplate = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;600;700&display=swap" rel="stylesheet">
  <style>
    body{font-family:Inter,system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Cantarell,Noto Sans,sans-serif;margin:0;padding:0;color:#111827}
    header{position:sticky;top:0;background:#111827;color:white;padding:16px 24px;z-index:10}
    .container{max-width:960px;margin:0 auto;padding:0 24px}
    nav ul{list-style:none;display:flex;gap:16px;padding:0;margin:0}
    a{color:#2563eb;text-decoration:none}
    a:hover{text-decoration:underline}
  </style>
</head>
<body>
  <header><div class="container"><strong>{{.Title}}</strong></div></header>
  <main class="container" style="padding:24px 0;">
    <aside style="float:right;width:240px;padding-left:24px;">
      <nav><ul>{{range .Pages}}<li><a href="#{{.Slug}}">{{.Title}}</a></li>{{end}}</ul></nav>
    </aside>
    <article style="margin-right:264px;">{{range .Pages}}<section id="{{.Slug}}" style="padding:40px 0;border-top:1px solid #e5e7eb;">
  <h2 style="font-size:24px;margin-bottom:12px;">{{.Title}}</h2>
  <div>{{.Content}}</div>
</section>{{end}}</article>
  </main>
</body>
</html>`

var site = template.Must(template.New("site").Parse(siteTemplate))

// Build renders the static site for the given title and ordered page list.
// Page ordering is the caller's responsibility; call sites sort
// lexicographically by title so repeated publishes are reproducible.
func Build(title string, pages []Page) (string, error) {
	view := siteView{Title: title, Pages: make([]pageView, 0, len(pages))}
	for _, p := range pages {
		view.Pages = append(view.Pages, pageView{
			Title:   p.Title,
			Slug:    p.Slug,
			Content: template.HTML(p.ContentHTML),
		})
	}

	// Execute into a buffer first so a template error cannot produce a
	// truncated artifact.
	buf := new(bytes.Buffer)
	if err := site.Execute(buf, view); err != nil {
		return "", fmt.Errorf("failed to render static site: %w", err)
	}
	return buf.String(), nil
}
