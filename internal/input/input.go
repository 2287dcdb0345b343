package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key
type Action int

const (
	ActionScrollLeft Action = iota
	ActionScrollRight
	ActionScrollUp
	ActionScrollDown
	ActionResetOffset
	ActionStockpile
	ActionMoveSelected
	ActionToggleMinimap
	ActionToggleInfo
	ActionQuit
	ActionMouseLeft
	ActionMouseRight
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys and buttons to logical actions and keeps
// per-frame edge state plus the last cursor position
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursorX, cursorY float64
	cursorMoved      bool
}

// NewInputManager creates an InputManager with the default bindings:
// arrows scroll, O resets the view, S builds a stockpile, M moves the
// selected villagers to the cursor
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyLeft, ActionScrollLeft)
	im.BindKey(glfw.KeyRight, ActionScrollRight)
	im.BindKey(glfw.KeyUp, ActionScrollUp)
	im.BindKey(glfw.KeyDown, ActionScrollDown)
	im.BindKey(glfw.KeyO, ActionResetOffset)
	im.BindKey(glfw.KeyS, ActionStockpile)
	im.BindKey(glfw.KeyM, ActionMoveSelected)
	im.BindKey(glfw.KeyTab, ActionToggleMinimap)
	im.BindKey(glfw.KeyI, ActionToggleInfo)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionMouseLeft)
	im.BindMouseButton(glfw.MouseButtonRight, ActionMouseRight)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.RLock()
	actions := im.keyToActions[key]
	im.mu.RUnlock()
	im.apply(actions, action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.RLock()
	actions := im.mouseButtonToActions[button]
	im.mu.RUnlock()
	im.apply(actions, action == glfw.Press)
}

// HandleCursorPos records the cursor position in window coordinates
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.cursorX, im.cursorY = x, y
	im.cursorMoved = true
}

// apply records a press or release; edges are detected as events arrive
// so a press and release inside one frame are both seen
func (im *InputManager) apply(actions []Action, pressed bool) {
	im.mu.Lock()
	defer im.mu.Unlock()
	for _, act := range actions {
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// SetCallbacks installs the key, mouse button and cursor callbacks on window
func (im *InputManager) SetCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		im.HandleCursorPos(x, y)
	})
}

// PostUpdate must be called at the end of each frame to clear edge flags
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.justPressed = [ActionCount]bool{}
	im.justReleased = [ActionCount]bool{}
	im.cursorMoved = false
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}

// Cursor returns the last cursor position in whole window pixels and
// whether it moved this frame
func (im *InputManager) Cursor() (x, y int, moved bool) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return int(im.cursorX), int(im.cursorY), im.cursorMoved
}
