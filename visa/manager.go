package visa

import (
	"errors"

	"github.com/puzpuzpuz/xsync/v3"
)

// ResourceManager tracks the sessions opened through it, keyed by resource
// string, so an application shutting down can close every instrument it
// still holds. It is safe for concurrent use.
type ResourceManager struct {
	sessions *xsync.MapOf[string, *Session]
}

// NewResourceManager creates an empty ResourceManager.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sessions: xsync.NewMapOf[string, *Session](),
	}
}

// Open dials the instrument identified by the given resource string and
// registers the session with the manager. The registration is removed when
// the session is closed.
func (rm *ResourceManager) Open(resource string, opts ...Option) (*Session, error) {
	s, err := Open(resource, opts...)
	if err != nil {
		return nil, err
	}
	s.manager = rm
	rm.sessions.Store(resource, s)

	return s, nil
}

// Get returns the open session for the given resource string, if any.
func (rm *ResourceManager) Get(resource string) (*Session, bool) {
	return rm.sessions.Load(resource)
}

// Len returns the number of open sessions tracked by the manager.
func (rm *ResourceManager) Len() int {
	return rm.sessions.Size()
}

// CloseAll closes every tracked session and returns the joined errors of
// the closes that genuinely failed.
func (rm *ResourceManager) CloseAll() error {
	var errs []error
	rm.sessions.Range(func(_ string, s *Session) bool {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
		return true
	})

	return errors.Join(errs...)
}

func (rm *ResourceManager) deregister(s *Session) {
	rm.sessions.Delete(s.resource)
}
