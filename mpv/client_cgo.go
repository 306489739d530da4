//go:build !ios && !android

package mpv

/*
#cgo pkg-config: mpv
#include <stdint.h>
#include <stdlib.h>
#include <mpv/client.h>

extern void goWakeup(uintptr_t data);

static void wakeup_trampoline(void *data) {
	goWakeup((uintptr_t)data);
}

static void set_wakeup(mpv_handle *h, uintptr_t data) {
	if (data == 0) {
		mpv_set_wakeup_callback(h, NULL, NULL);
		return;
	}
	mpv_set_wakeup_callback(h, wakeup_trampoline, (void *)data);
}
*/
import "C"

import (
	"runtime/cgo"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

// Handle wraps an mpv_handle. A Handle returned by Create is the master;
// CreateClient returns additional clients attached to the same core.
type Handle struct {
	h      *C.mpv_handle
	client bool

	once   sync.Once
	self   cgo.Handle
	wakeup atomic.Value // func()
}

// Create allocates an uninitialized playback core.
func Create() (*Handle, error) {
	h := C.mpv_create()
	if h == nil {
		return nil, ErrNoMem
	}
	return &Handle{h: h}, nil
}

// CreateClient attaches a new client to the same core.
func (h *Handle) CreateClient(name string) (*Handle, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	c := C.mpv_create_client(h.h, cname)
	if c == nil {
		return nil, ErrGeneric
	}
	return &Handle{h: c, client: true}, nil
}

func (h *Handle) ClientName() string {
	return C.GoString(C.mpv_client_name(h.h))
}

func (h *Handle) Initialize() error {
	return newError(int(C.mpv_initialize(h.h)))
}

func (h *Handle) SetOptionString(name, value string) error {
	cname, cvalue := C.CString(name), C.CString(value)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(cvalue))
	return newError(int(C.mpv_set_option_string(h.h, cname, cvalue)))
}

func (h *Handle) SetOptionFlag(name string, value bool) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	v := C.int(0)
	if value {
		v = 1
	}
	return newError(int(C.mpv_set_option(h.h, cname, C.MPV_FORMAT_FLAG, unsafe.Pointer(&v))))
}

func (h *Handle) SetOptionInt(name string, value int64) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	v := C.int64_t(value)
	return newError(int(C.mpv_set_option(h.h, cname, C.MPV_FORMAT_INT64, unsafe.Pointer(&v))))
}

func (h *Handle) SetOptionDouble(name string, value float64) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	v := C.double(value)
	return newError(int(C.mpv_set_option(h.h, cname, C.MPV_FORMAT_DOUBLE, unsafe.Pointer(&v))))
}

// cArgs builds a NULL terminated char* array in C memory.
func cArgs(args []string) (**C.char, func()) {
	p := C.malloc(C.size_t(len(args)+1) * C.size_t(unsafe.Sizeof((*C.char)(nil))))
	arr := unsafe.Slice((**C.char)(p), len(args)+1)
	for i, a := range args {
		arr[i] = C.CString(a)
	}
	arr[len(args)] = nil
	return (**C.char)(p), func() {
		for _, s := range arr[:len(args)] {
			C.free(unsafe.Pointer(s))
		}
		C.free(p)
	}
}

// Command runs a command synchronously, e.g. Command("loadfile", path).
func (h *Handle) Command(args ...string) error {
	cargs, free := cArgs(args)
	defer free()
	return newError(int(C.mpv_command(h.h, cargs)))
}

// CommandAsync queues a command; completion arrives as EventCommandReply
// carrying userdata.
func (h *Handle) CommandAsync(userdata uint64, args ...string) error {
	cargs, free := cArgs(args)
	defer free()
	return newError(int(C.mpv_command_async(h.h, C.uint64_t(userdata), cargs)))
}

func (h *Handle) GetPropertyString(name string) (string, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	s := C.mpv_get_property_string(h.h, cname)
	if s == nil {
		return "", ErrPropertyUnavailable
	}
	defer C.mpv_free(unsafe.Pointer(s))
	return C.GoString(s), nil
}

func (h *Handle) SetPropertyString(name, value string) error {
	cname, cvalue := C.CString(name), C.CString(value)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(cvalue))
	return newError(int(C.mpv_set_property_string(h.h, cname, cvalue)))
}

// GetPropertyAsync requests a property; the value arrives as
// EventGetPropertyReply carrying userdata.
func (h *Handle) GetPropertyAsync(userdata uint64, name string, format Format) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return newError(int(C.mpv_get_property_async(h.h, C.uint64_t(userdata), cname, C.mpv_format(format))))
}

func (h *Handle) SetPropertyAsync(userdata uint64, name, value string) error {
	cname, cvalue := C.CString(name), C.CString(value)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(cvalue))
	return newError(int(C.mpv_set_property_async(h.h, C.uint64_t(userdata), cname, C.MPV_FORMAT_STRING, unsafe.Pointer(&cvalue))))
}

// ObserveProperty delivers EventPropertyChange with userdata whenever
// the property changes, starting with its current value.
func (h *Handle) ObserveProperty(userdata uint64, name string, format Format) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return newError(int(C.mpv_observe_property(h.h, C.uint64_t(userdata), cname, C.mpv_format(format))))
}

func (h *Handle) UnobserveProperty(userdata uint64) error {
	return newError(int(C.mpv_unobserve_property(h.h, C.uint64_t(userdata))))
}

func (h *Handle) RequestLogMessages(level string) error {
	clevel := C.CString(level)
	defer C.free(unsafe.Pointer(clevel))
	return newError(int(C.mpv_request_log_messages(h.h, clevel)))
}

// WaitEvent blocks for at most timeout; a negative timeout waits forever
// and zero polls. EventNone means nothing was queued.
func (h *Handle) WaitEvent(timeout time.Duration) *Event {
	t := C.double(timeout.Seconds())
	if timeout < 0 {
		t = -1
	}
	return convertEvent(C.mpv_wait_event(h.h, t))
}

// SetWakeupCallback installs fn, called from a libmpv thread whenever
// new events are queued. fn must not call back into libmpv. A nil fn
// disables the callback.
func (h *Handle) SetWakeupCallback(fn func()) {
	if fn == nil {
		C.set_wakeup(h.h, 0)
		h.wakeup.Store(func() {})
		return
	}
	h.wakeup.Store(fn)
	h.once.Do(func() {
		h.self = cgo.NewHandle(h)
	})
	C.set_wakeup(h.h, C.uintptr_t(h.self))
}

func (h *Handle) notifyWakeup() {
	if fn, ok := h.wakeup.Load().(func()); ok {
		fn()
	}
}

// Wakeup interrupts a blocked WaitEvent.
func (h *Handle) Wakeup() {
	C.mpv_wakeup(h.h)
}

// Destroy detaches a client. The core keeps running while other
// handles exist.
func (h *Handle) Destroy() {
	C.mpv_destroy(h.h)
	h.release()
}

// TerminateDestroy shuts the core down and waits for every client.
// Render contexts must be freed before.
func (h *Handle) TerminateDestroy() {
	C.mpv_terminate_destroy(h.h)
	h.release()
}

// Close destroys a client or terminates the master.
func (h *Handle) Close() {
	if h.client {
		h.Destroy()
	} else {
		h.TerminateDestroy()
	}
}

func (h *Handle) release() {
	h.h = nil
	if h.self != 0 {
		h.self.Delete()
		h.self = 0
	}
}

func convertEvent(e *C.mpv_event) *Event {
	ev := &Event{
		ID:            EventID(e.event_id),
		Error:         newError(int(e.error)),
		ReplyUserdata: uint64(e.reply_userdata),
	}
	if e.data == nil {
		return ev
	}

	switch ev.ID {
	case EventGetPropertyReply, EventPropertyChange:
		ev.Property = convertProperty((*C.mpv_event_property)(e.data))
	case EventLogMessage:
		m := (*C.mpv_event_log_message)(e.data)
		ev.LogMessage = &LogMessage{
			Prefix: C.GoString(m.prefix),
			Level:  C.GoString(m.level),
			Text:   C.GoString(m.text),
		}
	case EventEndFile:
		f := (*C.mpv_event_end_file)(e.data)
		ev.EndFile = &EndFile{Reason: EndFileReason(f.reason), Error: newError(int(f.error))}
	}
	return ev
}

func convertProperty(ep *C.mpv_event_property) *Property {
	p := &Property{Name: C.GoString(ep.name), Format: Format(ep.format)}
	if ep.data == nil {
		return p
	}

	switch p.Format {
	case FormatString, FormatOSDString:
		p.Value = C.GoString(*(**C.char)(ep.data))
	case FormatFlag:
		p.Value = *(*C.int)(ep.data) != 0
	case FormatInt64:
		p.Value = int64(*(*C.int64_t)(ep.data))
	case FormatDouble:
		p.Value = float64(*(*C.double)(ep.data))
	}
	return p
}
