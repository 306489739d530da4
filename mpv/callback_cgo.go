//go:build !ios && !android

package mpv

// #include <stdint.h>
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

//export goWakeup
func goWakeup(data C.uintptr_t) {
	if h, ok := cgo.Handle(data).Value().(*Handle); ok {
		h.notifyWakeup()
	}
}

//export goRenderUpdate
func goRenderUpdate(data C.uintptr_t) {
	if r, ok := cgo.Handle(data).Value().(*RenderContext); ok {
		r.notifyUpdate()
	}
}

//export goGetProcAddress
func goGetProcAddress(data C.uintptr_t, name *C.char) unsafe.Pointer {
	r, ok := cgo.Handle(data).Value().(*RenderContext)
	if !ok || r.lookup == nil {
		return nil
	}
	return r.lookup(C.GoString(name))
}
