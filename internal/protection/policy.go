package protection

import (
	"strings"
	"sync"

	"github.com/shrimpsizemoose/semla/internal/metrics"
)

// DefaultChords are the key combinations the platform suppresses:
// developer tools, view-source, save, print, copy, paste, and screen
// capture. Chord names use "Ctrl+X" form plus bare key names.
var DefaultChords = []string{
	"F12",
	"PrintScreen",
	"Ctrl+U",
	"Ctrl+S",
	"Ctrl+P",
	"Ctrl+C",
	"Ctrl+V",
}

// KeyEvent is a normalized key press reported by the host surface.
type KeyEvent struct {
	Key  string
	Ctrl bool
}

func (e KeyEvent) chord() string {
	key := strings.ToUpper(e.Key)
	if e.Ctrl {
		return "Ctrl+" + key
	}
	if strings.EqualFold(e.Key, "PrintScreen") {
		return "PrintScreen"
	}
	return key
}

// Policy is the process-wide content-protection state machine. It is
// installed once per active session and torn down on logout. This is
// advisory deterrence only: it suppresses casual copy/inspect gestures
// and obscures content while the document is hidden, and guarantees
// nothing beyond that. It never gates data leaving the entity store.
type Policy struct {
	mu        sync.Mutex
	installed bool
	obscured  bool
	chords    map[string]bool
}

func NewPolicy(chords []string) *Policy {
	if len(chords) == 0 {
		chords = DefaultChords
	}
	set := make(map[string]bool, len(chords))
	for _, c := range chords {
		set[normalize(c)] = true
	}
	return &Policy{chords: set}
}

func normalize(chord string) string {
	if ctrl, ok := strings.CutPrefix(chord, "Ctrl+"); ok {
		return "Ctrl+" + strings.ToUpper(ctrl)
	}
	if strings.EqualFold(chord, "PrintScreen") {
		return "PrintScreen"
	}
	return strings.ToUpper(chord)
}

func (p *Policy) Install() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.installed = true
}

// Teardown uninstalls the listeners and lifts any obstruction.
func (p *Policy) Teardown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.installed = false
	p.obscured = false
}

func (p *Policy) Installed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.installed
}

// SuppressKey reports whether the host must swallow the key press.
func (p *Policy) SuppressKey(e KeyEvent) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.installed {
		return false
	}
	if p.chords[e.chord()] {
		metrics.ProtectionEventsTotal.WithLabelValues("key_chord").Inc()
		return true
	}
	return false
}

// SuppressContextMenu reports whether the default context menu action
// must be swallowed.
func (p *Policy) SuppressContextMenu() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.installed {
		return false
	}
	metrics.ProtectionEventsTotal.WithLabelValues("context_menu").Inc()
	return true
}

// SetHidden tracks document visibility. While hidden, rendered content
// must carry a strong visual obstruction; returning to the foreground
// removes it.
func (p *Policy) SetHidden(hidden bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.installed {
		return
	}
	if hidden && !p.obscured {
		metrics.ProtectionEventsTotal.WithLabelValues("tab_hidden").Inc()
	}
	p.obscured = hidden
}

func (p *Policy) Obscured() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.obscured
}
