package renderer

import (
	"github.com/unrolled/render"
)

// New returns the JSON/binary renderer shared by every handler.
func New(development bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:   development,
		UnEscapeHTML: true,
	})
}
