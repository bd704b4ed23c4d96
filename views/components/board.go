package components

import (
	"html/template"

	"github.com/a-h/templ"

	"guessword/internal/viewmodel"
)

var boardTmpl = template.Must(template.New("board").Parse(`<div id="board" data-running="{{.Running}}">
  <p class="clock" aria-label="time left">{{.Clock}}</p>
  <p class="word">{{.Word}}</p>
  <p class="score">Score: {{.Score}}</p>
</div>`))

// Board renders the word, score and clock fragment streamed on every change.
func Board(data viewmodel.Board) templ.Component {
	return templ.FromGoHTML(boardTmpl, data)
}
