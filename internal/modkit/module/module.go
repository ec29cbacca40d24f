// Package module is the contract every API or scanner module satisfies, plus
// the bootstrap registry main uses to hand one module's ports to another
package module

import (
	"fmt"
	"reflect"
	"sync"

	phttp "spoofwatch/internal/platform/net/http"
)

// Module is one wired slice of the application
type Module interface {
	Name() string
	// Ports is the module's exported port set, usually a Ports struct
	Ports() any
	// MountRoutes is a no-op for modules without HTTP routes
	MountRoutes(r phttp.Router)
}

var registry sync.Map // name -> ports

// Register publishes ports under name, replacing any earlier set
func Register(name string, ports any) { registry.Store(name, ports) }

// PortsAs returns the port set registered under name if it is a T
func PortsAs[T any](name string) (T, bool) {
	v, _ := registry.Load(name)
	p, ok := v.(T)
	return p, ok
}

// PortsOf finds a T in m.Ports(): the set itself, or one of its exported fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap code, where a missing port is a wiring bug
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s: no %v in its ports", m.Name(), reflect.TypeFor[T]()))
	}
	return v
}
