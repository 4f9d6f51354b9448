package akai

import (
	"flag"
	"strconv"
	"strings"
)

// RegisterFlags binds the options to command-line flags on fs, using the
// current values as defaults.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Title, "title", o.Title, "window title")
	fs.Var((*uint32Value)(&o.Width), "width", "window width in pixels")
	fs.Var((*uint32Value)(&o.Height), "height", "window height in pixels")
	fs.Var((*uint32Value)(&o.ImageCount), "images", "desired swapchain image count, 0 for surface minimum + 1")
	fs.BoolVar(&o.Validation, "validate", o.Validation, "enable validation layers and debug report")
	fs.Var((*listValue)(&o.Layers), "layers", "comma separated validation layers")
	fs.IntVar(&o.FrameRate, "fps", o.FrameRate, "event pump ticks per second")
}

type uint32Value uint32

func (v *uint32Value) String() string {
	return strconv.FormatUint(uint64(*v), 10)
}

func (v *uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*v = uint32Value(n)
	return nil
}

type listValue []string

func (v *listValue) String() string {
	return strings.Join(*v, ",")
}

func (v *listValue) Set(s string) error {
	*v = nil
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); len(name) > 0 {
			*v = append(*v, name)
		}
	}
	return nil
}
