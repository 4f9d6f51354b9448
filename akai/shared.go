package akai

import "fmt"

// shared counts the owners of a native handle. The handle is released
// when the last owner lets go, and only then are its parents dropped, so
// children always go before the objects that created them.
// Not safe for concurrent use; the runtime is confined to the main thread.
type shared struct {
	name    string
	owners  int
	release func()
	parents []*shared
}

// newShared starts with a single owner and retains every parent.
func newShared(name string, release func(), parents ...*shared) *shared {
	for _, p := range parents {
		p.retain()
	}
	return &shared{
		name:    name,
		owners:  1,
		release: release,
		parents: parents,
	}
}

func (s *shared) retain() {
	if s.owners <= 0 {
		panic(fmt.Sprintf("akai: retain of released %s", s.name))
	}
	s.owners++
}

// drop gives up one ownership and reports whether the handle was released.
func (s *shared) drop() bool {
	if s.owners <= 0 {
		panic(fmt.Sprintf("akai: %s released more times than retained", s.name))
	}
	s.owners--
	if s.owners > 0 {
		return false
	}
	if s.release != nil {
		s.release()
	}
	for i := len(s.parents) - 1; i >= 0; i-- {
		s.parents[i].drop()
	}
	s.parents = nil
	return true
}

func (s *shared) alive() bool {
	return s.owners > 0
}
