package render

import (
	"image"
	"image/color"
	"image/draw"
)

// renderPattern rasterizes a procedural overlay pattern, deterministic
// given (width, height, kind) per §4.5.
func renderPattern(kind string, w, h int, fg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	switch kind {
	case "dots":
		drawDots(img, fg)
	case "stripes":
		drawStripes(img, fg)
	case "checkerboard":
		drawCheckerboard(img, fg)
	default: // "solid" and any unrecognized kind
		draw.Draw(img, img.Bounds(), image.NewUniform(fg), image.Point{}, draw.Src)
	}
	return img
}

const patternCell = 20

func drawDots(img *image.RGBA, fg color.RGBA) {
	b := img.Bounds()
	radius := patternCell / 4
	for cy := b.Min.Y + patternCell/2; cy < b.Max.Y; cy += patternCell {
		for cx := b.Min.X + patternCell/2; cx < b.Max.X; cx += patternCell {
			for y := -radius; y <= radius; y++ {
				for x := -radius; x <= radius; x++ {
					if x*x+y*y <= radius*radius {
						px, py := cx+x, cy+y
						if (image.Point{X: px, Y: py}.In(b)) {
							img.SetRGBA(px, py, fg)
						}
					}
				}
			}
		}
	}
}

func drawStripes(img *image.RGBA, fg color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if (y/patternCell)%2 == 0 {
			for x := b.Min.X; x < b.Max.X; x++ {
				img.SetRGBA(x, y, fg)
			}
		}
	}
}

func drawCheckerboard(img *image.RGBA, fg color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if ((x/patternCell)+(y/patternCell))%2 == 0 {
				img.SetRGBA(x, y, fg)
			}
		}
	}
}
