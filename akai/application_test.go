package akai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

type fakeWindow struct {
	closeAfter int
	polls      int
	destroyed  int
}

func (w *fakeWindow) Title() string { return "fake" }
func (w *fakeWindow) Extent() vk.Extent2D { return vk.Extent2D{Width: 800, Height: 600} }
func (w *fakeWindow) RequiredInstanceExtensions() []string { return []string{"VK_KHR_surface"} }
func (w *fakeWindow) ShouldClose() bool { return w.polls >= w.closeAfter }
func (w *fakeWindow) PollEvents() { w.polls++ }
func (w *fakeWindow) Destroy() { w.destroyed++ }

func (w *fakeWindow) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	return vk.NullSurface, nil
}

func TestPumpStopsWhenWindowCloses(t *testing.T) {
	window := &fakeWindow{closeAfter: 3}
	exitC := make(chan struct{}, 2)
	doneC := make(chan struct{}, 2)
	exited := false

	pump(window, 1000, exitC, doneC, func() { exited = true })

	assert.Equal(t, 3, window.polls)
	assert.True(t, exited)
	select {
	case <-doneC:
	default:
		t.Fatal("pump did not report completion")
	}
}

func TestPumpStopsOnExitRequest(t *testing.T) {
	window := &fakeWindow{closeAfter: 1 << 30}
	exitC := make(chan struct{}, 2)
	doneC := make(chan struct{}, 2)
	exitC <- struct{}{}

	finished := make(chan struct{})
	go func() {
		pump(window, 1000, exitC, doneC, func() {})
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump kept running after an exit request")
	}
	require.Len(t, doneC, 1)
}

func TestNewApplicationRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 0
	window := &fakeWindow{}

	app, err := NewApplication(opts, window)
	assert.Error(t, err)
	assert.Nil(t, app)
	assert.Zero(t, window.destroyed, "the caller keeps the window on failure")
}

func TestApplicationDestroyOnce(t *testing.T) {
	window := &fakeWindow{}
	app := &Application{Options: DefaultOptions(), window: window}

	app.Destroy()
	app.Destroy()
	assert.Equal(t, 1, window.destroyed)

	var nilApp *Application
	assert.NotPanics(t, nilApp.Destroy)
}
