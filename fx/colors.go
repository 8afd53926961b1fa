package fx

import (
	"image/color"

	"github.com/plus3/blockblast/board"
)

// SpriteColors is the palette sprites are drawn with.
var SpriteColors = []color.RGBA{
	{255, 179, 186, 255},
	{179, 229, 252, 255},
	{255, 223, 186, 255},
	{186, 255, 201, 255},
	{255, 200, 221, 255},
	{186, 225, 255, 255},
	{255, 255, 186, 255},
	{217, 186, 255, 255},
}

// SpriteColor returns the colour of a sprite, wrapping around the palette.
func SpriteColor(s board.Sprite) color.RGBA {
	n := len(SpriteColors)
	return SpriteColors[((int(s)%n)+n)%n]
}
