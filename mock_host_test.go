package ambient

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gekko3d/ambient/rt/core"
)

type MockSurface struct {
	width, height int
	presents      int
	dirtySeen     map[string]int
	released      []core.ResourceID
	releaseCalls  int
	failPresent   bool
	failRelease   bool
}

func NewMockSurface(w, h int) *MockSurface {
	return &MockSurface{width: w, height: h, dirtySeen: make(map[string]int)}
}

func (s *MockSurface) Resize(w, h int) error {
	s.width, s.height = w, h
	return nil
}

func (s *MockSurface) Present(scene *core.Scene) error {
	if s.failPresent {
		return errors.New("device lost")
	}
	s.presents++
	for _, b := range scene.Batches {
		if b.Dirty() {
			s.dirtySeen[b.Name]++
			b.ClearDirty()
		}
	}
	return nil
}

func (s *MockSurface) ReleaseResource(id core.ResourceID) error {
	s.released = append(s.released, id)
	if s.failRelease {
		return fmt.Errorf("release %s failed", id)
	}
	return nil
}

func (s *MockSurface) Release() error {
	s.releaseCalls++
	if s.failRelease {
		return errors.New("surface release failed")
	}
	return nil
}

type MockContainer struct {
	width, height int
	attached      []Surface
	listeners     ResizeListeners
}

func NewMockContainer(w, h int) *MockContainer {
	return &MockContainer{width: w, height: h}
}

func (c *MockContainer) Size() (int, int) { return c.width, c.height }

func (c *MockContainer) Attach(s Surface) { c.attached = append(c.attached, s) }

func (c *MockContainer) Detach(s Surface) {
	for i, a := range c.attached {
		if a == s {
			c.attached = append(c.attached[:i], c.attached[i+1:]...)
			return
		}
	}
}

func (c *MockContainer) OnResize(fn func(w, h int)) func() { return c.listeners.Add(fn) }

// SetSize changes the size and notifies listeners like a host layout pass.
func (c *MockContainer) SetSize(w, h int) {
	c.width, c.height = w, h
	c.listeners.Notify(w, h)
}

// recordingLogger keeps every line for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordingLogger) DebugEnabled() bool                { return true }
func (l *recordingLogger) SetDebug(bool)                     {}
func (l *recordingLogger) Debugf(format string, args ...any) { l.add("DEBUG", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.add("INFO", format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.add("WARN", format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.add("ERROR", format, args...) }

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if strings.HasPrefix(line, level+":") {
			n++
		}
	}
	return n
}
