package shape_test

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// fakeOwner records what an item asks of its container.
type fakeOwner struct {
	detached    []string
	invalidated int
}

func (o *fakeOwner) Detach(id string)     { o.detached = append(o.detached, id) }
func (o *fakeOwner) Invalidate(id string) { o.invalidated++ }

// scriptedMenu answers every Exec with choice, or dismisses when choice is "".
type scriptedMenu struct {
	choices []string
	shown   [][]string
}

func (m *scriptedMenu) Exec(at r2.Vec, labels []string) (string, bool) {
	m.shown = append(m.shown, labels)
	if len(m.choices) == 0 {
		return "", false
	}
	c := m.choices[0]
	m.choices = m.choices[1:]
	return c, c != ""
}

type answer struct {
	n  int
	ok bool
}

// scriptedPrompter returns queued answers and records the titles asked.
type scriptedPrompter struct {
	answers []answer
	asked   []string
}

func (p *scriptedPrompter) Int(title, label string, value, min, max int) (int, bool) {
	p.asked = append(p.asked, title)
	if len(p.answers) == 0 {
		return value, false
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a.n, a.ok
}

func pt(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// checker returns a w x h image with an opaque 2x2 checker pattern.
func checker(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 200, A: 255}
			if (x/2+y/2)%2 == 0 {
				c = color.RGBA{B: 200, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
