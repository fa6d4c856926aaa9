package dialog

import "sync"

// refreshGuard marks programmatic updates of the dialog. Callbacks fired by
// widgets while the dialog itself changes them check active and do nothing.
type refreshGuard struct {
	depth int
}

// begin enters a programmatic update. The returned release must be called on
// every exit path, typically with defer; calling it more than once is safe.
func (g *refreshGuard) begin() (release func()) {
	g.depth++
	var once sync.Once
	return func() {
		once.Do(func() { g.depth-- })
	}
}

func (g *refreshGuard) active() bool {
	return g.depth > 0
}
