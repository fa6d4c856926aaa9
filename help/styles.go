package help

import (
	"github.com/gdamore/tcell/v2"
)

type Styles struct {
	KeyStyle       tcell.Style
	DescStyle      tcell.Style
	SeparatorStyle tcell.Style
	EllipsisStyle  tcell.Style
}

func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		KeyStyle:       dim,
		DescStyle:      tcell.StyleDefault,
		SeparatorStyle: dim,
		EllipsisStyle:  dim,
	}
}
