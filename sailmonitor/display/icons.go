package display

// The value font has no reliable minus glyph at this size, so signs are
// drawn from bitmaps instead.

type icon []string

func (ic icon) width() int16  { return int16(len(ic[0])) }
func (ic icon) height() int16 { return int16(len(ic)) }

var minusIcon = icon{
	"...........",
	"...........",
	"...........",
	"...........",
	"###########",
	"###########",
	"###########",
	"...........",
	"...........",
	"...........",
	"...........",
}

var plusIcon = icon{
	"....###....",
	"....###....",
	"....###....",
	"....###....",
	"###########",
	"###########",
	"###########",
	"....###....",
	"....###....",
	"....###....",
	"....###....",
}

func (f *Framebuffer) drawIcon(ic icon, x, y int16) {
	for dy, row := range ic {
		for dx := 0; dx < len(row); dx++ {
			if row[dx] == '#' {
				f.SetPixel(x+int16(dx), y+int16(dy), black)
			}
		}
	}
}
