package script

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Menu answers modal menus from the current step.
type Menu struct {
	choice string
	Shown  int
}

func (m *Menu) Exec(at r2.Vec, labels []string) (string, bool) {
	m.Shown++
	choice := m.choice
	m.choice = ""
	if choice == "" {
		return "", false
	}
	if !slices.Contains(labels, choice) {
		slog.Warn("scripted choice not in menu", "choice", choice, "labels", labels)
		return "", false
	}
	return choice, true
}

// Prompter answers integer prompts from the current step, in order. A prompt
// with no answer left is cancelled.
type Prompter struct {
	answers []int
}

func (p *Prompter) Int(title, label string, value, min, max int) (int, bool) {
	if len(p.answers) == 0 {
		return value, false
	}
	n := p.answers[0]
	p.answers = p.answers[1:]
	if n < min || n > max {
		slog.Debug("prompt answer out of range", "title", title, "value", n)
		return n, false
	}
	return n, true
}
