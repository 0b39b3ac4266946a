package renderer

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Fatal setup errors. Initialization aborts on any of these; there is no
// retry or fallback negotiation.
var (
	// ErrDriverUnavailable indicates the Vulkan loader could not be
	// initialized on this host.
	ErrDriverUnavailable = errors.New("renderer: vulkan driver unavailable")

	// ErrNoSurfaceExtension indicates that no supported platform surface
	// extension was found on the instance.
	ErrNoSurfaceExtension = errors.New("renderer: no supported platform surface extension")

	// ErrNoSuitablePhysicalDevice indicates that no enumerated device has
	// both swapchain support and a graphics+present queue family.
	ErrNoSuitablePhysicalDevice = errors.New("renderer: no suitable physical device")

	// ErrNoValidMemoryTypes indicates that no host-visible memory type with
	// sufficient heap capacity exists on the selected device.
	ErrNoValidMemoryTypes = errors.New("renderer: no valid vulkan memory types")

	// ErrNoSurfaceFormatFound indicates the surface does not offer
	// BGRA8-unorm with sRGB-nonlinear color space.
	ErrNoSurfaceFormatFound = errors.New("renderer: no surface format found")

	// ErrSurfaceTransformUnsupported indicates the surface cannot present
	// with the identity pre-transform.
	ErrSurfaceTransformUnsupported = errors.New("renderer: surface does not support identity transform")
)

// Fatal runtime errors. Once one of these escapes DrawFrame the GPU/driver
// state is considered unrecoverable and the loop terminates.
var (
	ErrDeviceLost  = errors.New("renderer: device lost")
	ErrSurfaceLost = errors.New("renderer: surface lost")
	ErrOutOfMemory = errors.New("renderer: out of memory")

	// ErrUnexpectedResult covers result codes the frame loop has no
	// specific handling for, including ones newer than this package. The
	// numeric code is preserved in the wrapped message.
	ErrUnexpectedResult = errors.New("renderer: unexpected result code")
)

// ErrOutOfCapacity is returned by QuadWriter when the geometry arena is
// exhausted. The arena never grows; callers must size their draw requests
// within the configured quad budget.
var ErrOutOfCapacity = errors.New("renderer: quad capacity exhausted")

// frameOutcome classifies an acquire or present result code.
type frameOutcome int

const (
	// frameProceed: success, continue with the frame.
	frameProceed frameOutcome = iota
	// frameRecreate: the swapchain is stale or suboptimal; recreate it
	// synchronously and drop the current frame.
	frameRecreate
	// frameFatal: any other result code, including unrecognized ones.
	frameFatal
)

func classifyFrameResult(res vk.Result) frameOutcome {
	switch res {
	case vk.Success:
		return frameProceed
	case vk.ErrorOutOfDate, vk.Suboptimal:
		return frameRecreate
	default:
		return frameFatal
	}
}

// fatalFrameError maps a fatal result code to a distinct error kind so
// callers can diagnose precisely. Unrecognized codes are still fatal.
func fatalFrameError(op string, res vk.Result) error {
	switch res {
	case vk.ErrorDeviceLost:
		return fmt.Errorf("%s: %w", op, ErrDeviceLost)
	case vk.ErrorSurfaceLost:
		return fmt.Errorf("%s: %w", op, ErrSurfaceLost)
	case vk.ErrorOutOfHostMemory, vk.ErrorOutOfDeviceMemory:
		return fmt.Errorf("%s: %w", op, ErrOutOfMemory)
	default:
		return fmt.Errorf("%s: %w %d", op, ErrUnexpectedResult, res)
	}
}
