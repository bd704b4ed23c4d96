package pages

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"guessword/internal/viewmodel"
	"guessword/views/components"
)

const layout = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body>{{end}}
{{define "foot"}}</body>
</html>{{end}}`

var (
	homeTmpl = template.Must(template.Must(template.New("home").Parse(layout)).Parse(`{{define "page"}}{{template "head" .}}
<main>
  <h1>Guess the word</h1>
  <form method="post" action="/games">
    <label>Seconds <input type="number" name="duration" value="{{.DurationSec}}" min="{{.MinSec}}" max="{{.MaxSec}}"></label>
    <button type="submit">Start</button>
  </form>
</main>
{{template "foot" .}}{{end}}`))

	gameTmpl = template.Must(template.Must(template.New("game").Parse(layout)).Parse(`{{define "top"}}{{template "head" .}}
<main id="game" data-session="{{.SessionID}}">
{{end}}
{{define "bottom"}}
  <form method="post" action="/game/{{.SessionID}}/skip" data-command><button type="submit">Skip</button></form>
  <form method="post" action="/game/{{.SessionID}}/correct" data-command><button type="submit">Got it</button></form>
</main>
<script src="/static/app.js" defer></script>
{{template "foot" .}}{{end}}`))

	scoreTmpl = template.Must(template.Must(template.New("score").Parse(layout)).Parse(`{{define "page"}}{{template "head" .}}
<main id="score" data-session="{{.SessionID}}">
  <h1>Final score</h1>
  <p class="score">{{.Score}}</p>
  <form method="post" action="/score/{{.SessionID}}/play-again"><button type="submit">Play again</button></form>
</main>
{{template "foot" .}}{{end}}`))
)

// HomePage renders the start screen.
func HomePage(data viewmodel.HomePage) templ.Component {
	return templ.FromGoHTML(homeTmpl.Lookup("page"), data)
}

// GamePage renders the game screen around the same board fragment the
// stream pushes.
func GamePage(data viewmodel.GamePage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := gameTmpl.ExecuteTemplate(w, "top", data); err != nil {
			return err
		}
		if err := components.Board(data.Board).Render(ctx, w); err != nil {
			return err
		}
		return gameTmpl.ExecuteTemplate(w, "bottom", data)
	})
}

// ScorePage renders the final score screen.
func ScorePage(data viewmodel.ScorePage) templ.Component {
	return templ.FromGoHTML(scoreTmpl.Lookup("page"), data)
}
