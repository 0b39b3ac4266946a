package renderer

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestClassifyFrameResult(t *testing.T) {
	cases := []struct {
		res  vk.Result
		want frameOutcome
	}{
		{vk.Success, frameProceed},
		{vk.ErrorOutOfDate, frameRecreate},
		{vk.Suboptimal, frameRecreate},
		{vk.ErrorDeviceLost, frameFatal},
		{vk.ErrorSurfaceLost, frameFatal},
		{vk.ErrorOutOfHostMemory, frameFatal},
		{vk.Timeout, frameFatal},
		{vk.Result(-1000000), frameFatal},
	}
	for _, c := range cases {
		if got := classifyFrameResult(c.res); got != c.want {
			t.Errorf("classifyFrameResult(%d) = %d, want %d", c.res, got, c.want)
		}
	}
}

func TestFatalFrameErrorKinds(t *testing.T) {
	cases := []struct {
		res  vk.Result
		want error
	}{
		{vk.ErrorDeviceLost, ErrDeviceLost},
		{vk.ErrorSurfaceLost, ErrSurfaceLost},
		{vk.ErrorOutOfHostMemory, ErrOutOfMemory},
		{vk.ErrorOutOfDeviceMemory, ErrOutOfMemory},
		{vk.Timeout, ErrUnexpectedResult},
		{vk.NotReady, ErrUnexpectedResult},
		{vk.Result(-42), ErrUnexpectedResult},
	}
	for _, c := range cases {
		err := fatalFrameError("present", c.res)
		if !errors.Is(err, c.want) {
			t.Errorf("fatalFrameError(%d) = %v, want wrapping %v", c.res, err, c.want)
		}
	}
}

func TestSelectSurfaceExtensions(t *testing.T) {
	// Wayland outranks the X protocol extensions when both are present.
	exts, err := selectSurfaceExtensions([]string{
		"VK_KHR_surface", "VK_KHR_xlib_surface", "VK_KHR_wayland_surface", "VK_KHR_xcb_surface",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(exts) != 2 || exts[1] != "VK_KHR_wayland_surface" {
		t.Errorf("selected %v, want generic + wayland", exts)
	}

	exts, err = selectSurfaceExtensions([]string{"VK_KHR_surface", "VK_KHR_xlib_surface"})
	if err != nil {
		t.Fatal(err)
	}
	if exts[1] != "VK_KHR_xlib_surface" {
		t.Errorf("selected %v, want xlib fallback", exts)
	}

	if _, err := selectSurfaceExtensions([]string{"VK_KHR_surface"}); !errors.Is(err, ErrNoSurfaceExtension) {
		t.Errorf("no platform extension: err = %v, want ErrNoSurfaceExtension", err)
	}
	if _, err := selectSurfaceExtensions([]string{"VK_KHR_xcb_surface"}); !errors.Is(err, ErrNoSurfaceExtension) {
		t.Errorf("missing generic extension: err = %v, want ErrNoSurfaceExtension", err)
	}
}
