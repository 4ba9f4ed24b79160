// Package registry holds the game factories. Games register themselves in
// init(), so the platform and CLI discover them by blank import only.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gor-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered id.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the contract between a game adapter and the platform. Games hold
// their own state and never touch the terminal; the platform maps keys to
// actions, drives Step at a fixed rate and paints the Screen.
type Game interface {
	// ID is the stable identifier used by the CLI and the score tables.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new round. The RuntimeConfig carries the screen size,
	// tick rate, seed and player label.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input. A terminal transition sets
	// StepResult.Result exactly once.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns score and status flags.
	State() core.GameState
}

// Ranked is implemented by games whose scores rank lowest-first.
type Ranked interface {
	Order() core.Order
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
	Order core.Order
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a game factory. It panics on an empty or duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title(), Order: core.HigherIsBetter}
	if r, ok := g.(Ranked); ok {
		info.Order = r.Order()
	}
	factories[id] = f
	infos[id] = info
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Info returns the metadata of one game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// Create instantiates a game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// unregister removes a game; tests use it to clean up fakes.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(factories, id)
	delete(infos, id)
}
