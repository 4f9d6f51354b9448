package akai

import (
	"github.com/cockroachdb/errors"
	as "github.com/vulkan-go/asche"
	vk "github.com/vulkan-go/vulkan"
)

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// vkCheck converts ret into an error naming the failed call.
func vkCheck(ret vk.Result, name string) error {
	if !isError(ret) {
		return nil
	}
	return errors.Wrapf(as.NewError(ret), "%s failed", name)
}

// unwind runs cleanups in reverse order unless discarded.
type unwind []func()

func (u *unwind) add(cleanup func()) {
	*u = append(*u, cleanup)
}

func (u *unwind) run() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

func (u *unwind) discard() {
	*u = nil
}

// safeString appends the NUL terminator vulkan-go expects for C strings.
func safeString(s string) string {
	if len(s) > 0 && s[len(s)-1] == 0 {
		return s
	}
	return s + "\x00"
}

func safeStrings(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, safeString(s))
	}
	return out
}
