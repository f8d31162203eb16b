package rowan

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// CapScript tags lua-driven components.
var CapScript = NewCapability("script")

// Script runs lua logic attached to an entity. Each component owns one VM.
//
// The loaded chunk may define three optional globals: init(), update(dt)
// and destroy(). They are called from the matching lifecycle hooks with a
// global `entity` table (name, id, child names) refreshed before each
// call. Lua errors are logged and swallowed; a broken script never takes
// the frame down. The VM is closed when the component is destroyed.
type Script struct {
	Base

	vm   *lua.LState
	name string // source label for log lines
}

// NewScript loads lua source into a fresh VM. The chunk runs once at load
// time, so top-level statements can set up state for the hooks.
func NewScript(source string) (*Script, error) {
	s := &Script{vm: newScriptVM(), name: "inline"}
	if err := s.vm.DoString(source); err != nil {
		s.vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return s, nil
}

// NewScriptFromFile loads a lua file into a fresh VM.
func NewScriptFromFile(path string) (*Script, error) {
	s := &Script{vm: newScriptVM(), name: path}
	if err := s.vm.DoFile(path); err != nil {
		s.vm.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return s, nil
}

func newScriptVM() *lua.LState {
	return lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
}

// Capabilities implements Component.
func (s *Script) Capabilities() []Capability {
	return []Capability{CapScript}
}

// VM exposes the underlying lua state so callers can register Go functions
// or globals before the entity initializes. Nil after Destroy.
func (s *Script) VM() *lua.LState {
	return s.vm
}

// Init implements Component by calling the script's init() global.
func (s *Script) Init() {
	s.call("init")
}

// Update implements Component by calling the script's update(dt) global.
func (s *Script) Update(dt float64) {
	s.call("update", lua.LNumber(dt))
}

// Destroy calls the script's destroy() global, then closes the VM.
func (s *Script) Destroy() {
	if s.vm == nil {
		return
	}
	s.call("destroy")
	s.vm.Close()
	s.vm = nil
}

// refreshEntityTable rebuilds the global `entity` table from the owning
// entity's current state.
func (s *Script) refreshEntityTable() {
	e := s.Entity()
	if e == nil {
		return
	}
	t := s.vm.NewTable()
	t.RawSetString("name", lua.LString(e.Name))
	t.RawSetString("id", lua.LNumber(e.ID))

	kids := s.vm.NewTable()
	for i, child := range e.Children() {
		kids.RawSetInt(i+1, lua.LString(child.Name))
	}
	t.RawSetString("children", kids)

	s.vm.SetGlobal("entity", t)
}

func (s *Script) call(name string, args ...lua.LValue) {
	if s.vm == nil {
		return
	}
	fn := s.vm.GetGlobal(name)
	if fn == lua.LNil {
		return
	}
	s.refreshEntityTable()
	if err := s.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		logger.Warn("script error",
			zap.String("script", s.name),
			zap.String("fn", name),
			zap.Error(err))
	}
}
