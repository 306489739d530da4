// Package query correlates asynchronous property requests with the
// replies libmpv delivers through its event queue.
package query

import (
	"sync"

	"github.com/pkg/errors"
)

// Base is the first userdata handed out for queries. Smaller values are
// left to property observers, whose change events carry them too.
const Base uint64 = 1 << 32

// ErrClosed is returned by Get after Cancel.
var ErrClosed = errors.New("query dispatcher closed")

// Reply is the outcome of one query.
type Reply struct {
	Name  string
	Value interface{}
	Err   error
}

type pending struct {
	name string
	cb   func(Reply)
}

// Dispatcher tracks outstanding queries by reply userdata.
type Dispatcher struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]pending
	closed  error
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{next: Base, pending: make(map[uint64]pending)}
}

// Get registers cb under a fresh userdata and calls issue with it. The
// registration happens first, so a reply racing ahead of issue's return
// still finds its callback. If issue fails the registration is dropped
// and cb is never called.
func (d *Dispatcher) Get(name string, issue func(userdata uint64) error, cb func(Reply)) error {
	d.mu.Lock()
	if d.closed != nil {
		err := d.closed
		d.mu.Unlock()
		return err
	}
	userdata := d.next
	d.next++
	d.pending[userdata] = pending{name: name, cb: cb}
	d.mu.Unlock()

	if err := issue(userdata); err != nil {
		d.mu.Lock()
		delete(d.pending, userdata)
		d.mu.Unlock()
		return errors.Wrapf(err, "query %s", name)
	}
	return nil
}

// Resolve delivers r to the callback registered under userdata and
// forgets it. It reports false for unknown userdata.
func (d *Dispatcher) Resolve(userdata uint64, r Reply) bool {
	d.mu.Lock()
	p, ok := d.pending[userdata]
	delete(d.pending, userdata)
	d.mu.Unlock()
	if !ok {
		return false
	}

	if r.Name == "" {
		r.Name = p.name
	}
	if p.cb != nil {
		p.cb(r)
	}
	return true
}

func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Cancel fails every outstanding query with err (ErrClosed if nil) and
// rejects later ones.
func (d *Dispatcher) Cancel(err error) {
	if err == nil {
		err = ErrClosed
	}

	d.mu.Lock()
	if d.closed == nil {
		d.closed = err
	}
	outstanding := d.pending
	d.pending = make(map[uint64]pending)
	d.mu.Unlock()

	for _, p := range outstanding {
		if p.cb != nil {
			p.cb(Reply{Name: p.name, Err: err})
		}
	}
}
