package contact

import (
	"embed"
	"io/fs"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

//go:embed templates
var embedded embed.FS

// Templates holds the bundled markdown copy and layouts.
var Templates fs.FS = mustSub(embedded, "templates")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// NewRenderer returns a renderer over fsys, or over the bundled templates
// when fsys is nil. Copy lives at the root, layouts under "layouts".
func NewRenderer(fsys fs.FS) *mailer.Renderer {
	if fsys == nil {
		fsys = Templates
	}
	return mailer.NewRendererWithConfig(fsys, mailer.RendererConfig{LayoutDir: "layouts"})
}
