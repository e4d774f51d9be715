package render

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontProvider resolves a (family, weight, style) tuple to a font.Face at
// a given size. The compositor never ships its own font files; callers
// point it at a directory of TTF/OTF files keyed by family name, and any
// family that can't be found falls back to a fixed-size bitmap face so
// text rendering never hard-fails an element (§4.2 failure policy).
type FontProvider struct {
	dir string

	mu    sync.Mutex
	faces map[string]*opentype.Font
}

// NewFontProvider returns a provider that looks for "<dir>/<family>.ttf"
// (falling back to ".otf") on each distinct family it is asked for.
func NewFontProvider(dir string) *FontProvider {
	return &FontProvider{dir: dir, faces: make(map[string]*opentype.Font)}
}

// Face returns a font.Face sized for fontSize (in px). On any lookup or
// parse failure it returns the stdlib basicfont face, which ignores size,
// so callers always get something drawable.
func (p *FontProvider) Face(family string, fontSize float64) font.Face {
	fnt, err := p.loadFont(family)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

func (p *FontProvider) loadFont(family string) (*opentype.Font, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fnt, ok := p.faces[family]; ok {
		return fnt, nil
	}

	for _, ext := range []string{".ttf", ".otf"} {
		path := fmt.Sprintf("%s/%s%s", p.dir, family, ext)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fnt, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		p.faces[family] = fnt
		return fnt, nil
	}
	return nil, fmt.Errorf("no font file found for family %q under %s", family, p.dir)
}
