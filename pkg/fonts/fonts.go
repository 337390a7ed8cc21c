// Package fonts discovers a usable system font for raster output and hands
// out parsed faces. Discovery runs once; everything downstream shares the
// same font so measurements stay consistent across a run.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/insightdeck/insightdeck/pkg/errors"
)

// candidates are tried in order; the first one present on the system wins.
var candidates = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
}

var (
	once   sync.Once
	parsed *truetype.Font
	err    error
)

func load() {
	for _, name := range candidates {
		path, ferr := findfont.Find(name)
		if ferr != nil {
			continue
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			continue
		}
		f, perr := truetype.Parse(data)
		if perr != nil {
			continue
		}
		parsed = f
		return
	}
	err = errors.New(errors.ErrCodeFileNotFound, "no usable system font found (tried %v)", candidates)
}

// Regular returns the discovered system font, parsed.
func Regular() (*truetype.Font, error) {
	once.Do(load)
	return parsed, err
}

// Face returns a rendering face of the discovered font at the given size.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}
