// Package registry maps mode IDs to game factories. Each mode registers
// itself from an init function, so the CLI, menu and SSH server can list and
// start modes without importing them directly.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is a playable mode driven one fixed tick at a time by a platform.
// Implementations hold no terminal state: input arrives as a core.InputFrame
// and output goes to a core.Screen.
type Game interface {
	// ID is the stable mode identifier, also the key scores are stored under.
	ID() string
	Title() string

	// Reset starts a new game for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)
	// Step applies one frame of input and advances the simulation one tick.
	Step(in core.InputFrame) core.StepResult
	// Render draws into dst, which the game clears itself.
	Render(dst *core.Screen)
	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a fresh, not yet reset game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu    sync.RWMutex
	modes = make(map[string]entry)
)

// Register adds a mode. It panics on a duplicate id or when the factory's
// games report a different ID, since scores would be filed under the wrong key.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := modes[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	g := f()
	if g.ID() != id {
		panic(fmt.Sprintf("registry: game registered as %q reports ID %q", id, g.ID()))
	}
	modes[id] = entry{info: GameInfo{ID: id, Title: g.Title()}, factory: f}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(modes))
	for _, e := range modes {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new game for id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Title returns the display title for id, or id itself when it is unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if e, ok := modes[id]; ok {
		return e.info.Title
	}
	return id
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
