package hal

import "errors"

// Common HAL errors representing unrecoverable device states. Every
// device-facing operation the filter chain performs returns one of these
// (or a backend-specific wrapped error) rather than panicking.
var (
	// ErrBackendNotFound indicates the requested backend is not
	// registered; call RegisterBackend from the backend package's init
	// first.
	ErrBackendNotFound = errors.New("hal: backend not found")

	// ErrDeviceOutOfMemory indicates the GPU has exhausted its memory.
	// Unrecoverable: the caller should reduce resource usage or abort.
	ErrDeviceOutOfMemory = errors.New("hal: device out of memory")

	// ErrDeviceLost indicates the device was lost (driver crash, GPU
	// reset, or TDR). The device cannot be recovered; the chain must be
	// rebuilt against a new device.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrUnsupportedFormat indicates the device cannot create a texture
	// or render target in the requested ImageFormat.
	ErrUnsupportedFormat = errors.New("hal: unsupported image format")
)
