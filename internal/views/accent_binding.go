package views

import (
	"strings"
	"sync"

	"folio/internal/theme"
)

// AccentBinding keeps the rendered style variables in step with a theme.Store.
type AccentBinding struct {
	mu          sync.RWMutex
	css         string
	hex         string
	unsubscribe func()
}

func BindAccent(store *theme.Store) *AccentBinding {
	b := &AccentBinding{}
	b.apply(store.Accent())
	b.unsubscribe = store.Subscribe(b.apply)
	return b
}

func (b *AccentBinding) apply(a theme.Accent) {
	b.mu.Lock()
	b.css = a.CSS()
	b.hex = a.Hex
	b.mu.Unlock()
}

// CSS returns the style block and an entity tag derived from the colour.
func (b *AccentBinding) CSS() (css, etag string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.css, `"accent-` + strings.TrimPrefix(b.hex, "#") + `"`
}

func (b *AccentBinding) Close() {
	b.unsubscribe()
}
