package web

import (
	"bytes"
	"html/template"

	"github.com/kasperro3/tictactoe/internal/app"
	"github.com/kasperro3/tictactoe/internal/domain"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellSymbol": func(m domain.Mark) string { return m.String() },
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Tic-tac-toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.row{display:flex}
.row button{width:4rem;height:4rem;font-size:2rem}
#history button[aria-current]{font-weight:bold}
</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-tac-toe</h1><form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events" sse-swap="board" hx-target="#board" hx-swap="outerHTML">
  {{template "board" .}}
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, data any) []byte {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil
	}
	return buf.Bytes()
}

const boardTemplate = `
<div id="board">
  <p class="status">{{.Snap.Status}}</p>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{range $r := iter 3}}
  <div class="row">
    {{range $c := iter 3}}{{$i := add (mul $r 3) $c}}{{$m := index $.Snap.Board $i}}
      <form hx-post="/game/{{$.ID}}/tap" hx-target="#board" hx-swap="outerHTML" method="post" action="/game/{{$.ID}}/tap">
        <input type="hidden" name="cell" value="{{$i}}">
        <button type="submit" data-cell="{{$i}}">{{cellSymbol $m}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  <ol id="history">
    {{range .Snap.History}}
    <li>
      <form hx-post="/game/{{$.ID}}/jump" hx-target="#board" hx-swap="outerHTML" method="post" action="/game/{{$.ID}}/jump">
        <input type="hidden" name="move" value="{{.Move}}">
        <button type="submit"{{if .Current}} aria-current="step"{{end}}>{{.Label}}</button>
      </form>
    </li>
    {{end}}
  </ol>
</div>
`

// boardData feeds the board template.
type boardData struct {
	ID    string
	Snap  app.Snapshot
	Error string
}
