package akai

import (
	"log"
	"time"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
	"github.com/xlab/closer"
)

// Application is the generative art runtime. It owns the window and the
// Vulkan objects needed to present into it.
type Application struct {
	Options Options

	window    Window
	instance  *Instance
	surface   *Surface
	gpu       vk.PhysicalDevice
	device    *Device
	swapchain *Swapchain
	destroyed bool
}

// NewApplication builds instance, surface, device and swapchain for window,
// in that order, and takes ownership of the window. On failure everything
// built so far is destroyed and the window stays with the caller.
func NewApplication(opts Options, window Window) (*Application, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	a := &Application{
		Options: opts,
		window:  window,
	}
	var (
		u   unwind
		err error
	)
	defer u.run()

	// step 1: the driver connection.
	if a.instance, err = NewInstance(opts, window); err != nil {
		return nil, err
	}
	u.add(a.instance.Destroy)

	// step 2: the window surface.
	if a.surface, err = NewSurface(a.instance, window); err != nil {
		return nil, err
	}
	u.add(a.surface.Destroy)

	// step 3: a GPU that can present to the surface, and a logical device on it.
	gpu, family, err := a.instance.PickPhysicalDevice(a.surface)
	if err != nil {
		return nil, err
	}
	a.gpu = gpu
	if a.device, err = NewDevice(a.instance, gpu, family); err != nil {
		return nil, err
	}
	u.add(a.device.Destroy)

	// step 4: the swapchain.
	if a.swapchain, err = NewSwapchain(opts, a.device, window, a.surface); err != nil {
		return nil, errors.Wrap(err, "swapchain")
	}
	u.discard()

	log.Printf("[INFO] initialized %s with %+v swapchain", opts.Title, *a.swapchain.Params.Dimensions())
	return a, nil
}

func (a *Application) Window() Window {
	return a.window
}

func (a *Application) Instance() *Instance {
	return a.instance
}

func (a *Application) Surface() *Surface {
	return a.surface
}

func (a *Application) PhysicalDevice() vk.PhysicalDevice {
	return a.gpu
}

func (a *Application) Device() *Device {
	return a.device
}

func (a *Application) Swapchain() *Swapchain {
	return a.swapchain
}

// Run pumps window events until the window asks to close or the process
// is told to exit, then destroys the application. It must be called from
// the thread that created the window.
func (a *Application) Run() {
	doneC := make(chan struct{}, 2)
	exitC := make(chan struct{}, 2)
	closer.Bind(func() {
		exitC <- struct{}{}
		<-doneC
		log.Println("Bye!")
	})
	pump(a.window, a.Options.FrameRate, exitC, doneC, a.Destroy)
}

// pump polls events at frameRate ticks per second. Once a close is
// requested through the window or exitC it runs onExit and reports on doneC.
func pump(window Window, frameRate int, exitC chan struct{}, doneC chan<- struct{}, onExit func()) {
	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()
	for {
		select {
		case <-exitC:
			onExit()
			doneC <- struct{}{}
			return
		case <-ticker.C:
			if window.ShouldClose() {
				exitC <- struct{}{}
				continue
			}
			window.PollEvents()
		}
	}
}

// Destroy releases the Vulkan objects, children first, and then the window.
func (a *Application) Destroy() {
	if a == nil || a.destroyed {
		return
	}
	a.destroyed = true
	if a.device != nil {
		if err := a.device.WaitIdle(); err != nil {
			log.Println("[WARN]", err)
		}
	}
	a.swapchain.Destroy()
	a.device.Destroy()
	a.surface.Destroy()
	a.instance.Destroy()
	if a.window != nil {
		a.window.Destroy()
	}
}
