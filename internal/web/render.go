package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"taskweb/internal/domain"
)

// layoutTemplate is the shared page shell. Each page parses its own
// "content" template into a clone of this layout before executing.
const layoutTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} — taskweb</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Helvetica,Arial,sans-serif;margin:16px;max-width:860px}
nav{margin-bottom:12px}
nav a{padding:6px 10px;text-decoration:none;color:#0366d6;border-radius:4px}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #d0d7de;padding:6px 8px;text-align:left;font-size:14px}
thead th{background:#f6f8fa}
tbody tr:nth-child(even){background:#f9fbfd}
.badge{display:inline-block;padding:2px 8px;border-radius:12px;font-size:12px}
.badge.done{background:#dcfce7;color:#166534}
.badge.open{background:#e0e7ff;color:#3730a3}
.errors{background:#fee2e2;border:1px solid #fecaca;color:#991b1b;padding:8px;margin-bottom:12px;border-radius:4px}
.errors ul{margin:0;padding-left:18px}
.field{margin-bottom:10px}
.field label{display:block;margin-bottom:4px;font-weight:600}
.field input[type=text],.field textarea{width:100%;padding:6px;border:1px solid #d0d7de;border-radius:4px;box-sizing:border-box}
.description{padding:12px;background:#f9fafb;border-left:3px solid #0366d6;line-height:1.6}
.meta{color:#6a737d;font-size:13px}
form.inline{display:inline}
button{cursor:pointer}
</style>
</head>
<body>
<nav><a href="/">Tasks</a> · <a href="/create/">New task</a></nav>
{{template "content" .}}
</body>
</html>
`

const listTemplate = `
<h2>{{.Title}}</h2>
{{if .Tasks}}
<table>
  <thead><tr><th style="width:64px;">ID</th><th>Title</th><th style="width:90px;">Status</th><th style="width:160px;">Created</th><th style="width:200px;">Actions</th></tr></thead>
  <tbody>
  {{range .Tasks}}
    <tr>
      <td>{{.ID}}</td>
      <td><a href="/{{.ID}}/">{{.Title}}</a></td>
      <td>{{if .Done}}<span class="badge done">done</span>{{else}}<span class="badge open">open</span>{{end}}</td>
      <td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
      <td>
        <a href="/{{.ID}}/update/">edit</a>
         · <form class="inline" method="post" action="/{{.ID}}/delete/"><button type="submit">delete</button></form>
      </td>
    </tr>
  {{end}}
  </tbody>
</table>
{{else}}
<p>No tasks yet. <a href="/create/">Create one</a>.</p>
{{end}}
`

const detailTemplate = `
<h2>{{.Task.Title}}</h2>
<p>
  {{if .Task.Done}}<span class="badge done">done</span>{{else}}<span class="badge open">open</span>{{end}}
</p>
<p class="meta">Created {{.Task.CreatedAt.Format "2006-01-02 15:04"}} · Updated {{.Task.UpdatedAt.Format "2006-01-02 15:04"}}</p>
{{if .Task.Description}}
<div class="description">{{renderMarkdown .Task.Description}}</div>
{{end}}
<p>
  <a href="/{{.Task.ID}}/update/">edit</a>
   · <form class="inline" method="post" action="/{{.Task.ID}}/delete/"><button type="submit">delete</button></form>
   · <a href="/">back to list</a>
</p>
`

const formTemplate = `
<h2>{{.Title}}</h2>
{{if .Errors}}
<div class="errors">
  <ul>
  {{range $field, $message := .Errors}}<li>{{$message}}</li>{{end}}
  </ul>
</div>
{{end}}
<form method="post" action="{{.Action}}">
  <div class="field">
    <label for="title">Title</label>
    <input type="text" id="title" name="title" value="{{.Form.Title}}">
  </div>
  <div class="field">
    <label for="description">Description (markdown supported)</label>
    <textarea id="description" name="description" rows="8">{{.Form.Description}}</textarea>
  </div>
  <div class="field">
    <label><input type="checkbox" name="done" value="1"{{if .Form.Done}} checked{{end}}> Done</label>
  </div>
  <button type="submit">Save</button> · <a href="/">cancel</a>
</form>
`

const errorTemplate = `
<h2>{{.Title}}</h2>
<p>{{.Message}}</p>
<p><a href="/">back to list</a></p>
`

// listPage is the template data for the task list page.
type listPage struct {
	Title string
	Tasks []*domain.Task
}

// detailPage is the template data for the task detail page.
type detailPage struct {
	Title string
	Task  *domain.Task
}

// formPage is the template data for the create and update form pages.
type formPage struct {
	Title  string
	Action string
	Form   TaskForm
	Errors FieldErrors
}

// errorPage is the template data for rendered error pages.
type errorPage struct {
	Title   string
	Message string
}

// Renderer renders the application's HTML pages from the shared layout.
type Renderer struct {
	layoutTpl *template.Template
}

// NewRenderer parses the layout template and registers template helpers.
func NewRenderer() *Renderer {
	baseTpl := template.New("layout").Funcs(template.FuncMap{
		"renderMarkdown": renderMarkdown,
	})
	return &Renderer{
		layoutTpl: template.Must(baseTpl.Parse(layoutTemplate)),
	}
}

// render executes the layout with the given content template and data.
func (rn *Renderer) render(w http.ResponseWriter, status int, contentTmpl string, data any) {
	t := template.Must(rn.layoutTpl.Clone())
	template.Must(t.New("content").Parse(contentTmpl))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.Execute(w, data); err != nil {
		slog.Error("failed to execute template", "error", err)
	}
}

// TaskList renders the task list page.
func (rn *Renderer) TaskList(w http.ResponseWriter, tasks []*domain.Task) {
	rn.render(w, http.StatusOK, listTemplate, listPage{Title: "Tasks", Tasks: tasks})
}

// TaskDetail renders a single task page.
func (rn *Renderer) TaskDetail(w http.ResponseWriter, task *domain.Task) {
	rn.render(w, http.StatusOK, detailTemplate, detailPage{Title: task.Title, Task: task})
}

// TaskForm renders the create/update form with the given values and
// validation errors. Status lets a failed submission answer 422 while the
// initial GET answers 200.
func (rn *Renderer) TaskForm(
	w http.ResponseWriter,
	status int,
	title, action string,
	form TaskForm,
	fieldErrors FieldErrors,
) {
	rn.render(w, status, formTemplate, formPage{
		Title:  title,
		Action: action,
		Form:   form,
		Errors: fieldErrors,
	})
}

// ErrorPage renders an error page with the given status and message.
func (rn *Renderer) ErrorPage(w http.ResponseWriter, status int, message string) {
	rn.render(w, status, errorTemplate, errorPage{
		Title:   http.StatusText(status),
		Message: message,
	})
}

// renderMarkdown converts Markdown text to sanitized HTML for templates.
// Raw HTML in the source is skipped so task descriptions cannot inject markup.
func renderMarkdown(text string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(text))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML,
	})

	return template.HTML(markdown.Render(doc, renderer))
}
