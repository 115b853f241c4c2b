// Package librashader loads RetroArch "slang" shader presets and drives
// them as a multi-pass filter chain against a caller-supplied GPU
// backend.
//
// # Quick Start
//
// Import this package and a backend registration package:
//
//	import (
//	    "github.com/SnowflakePowered/librashader-go"
//	    "github.com/SnowflakePowered/librashader-go/hal"
//	    _ "github.com/SnowflakePowered/librashader-go/hal/gl"
//	)
//
//	factory, _ := hal.GetBackend(hal.BackendGL)
//	device, _ := factory(nil)
//	// The preset path must be absolute.
//	chain, err := librashader.Load("/path/to/crt-royale.slangp", device, nil, librashader.Options{})
//	// ...
//	defer chain.Release()
//
// # Resource Lifecycle
//
// A Chain owns every GPU resource it allocates (pipelines, intermediate
// textures, uniform buffers, samplers). Callers must call Release when
// done with it. Release is idempotent; every other Chain method returns
// ErrReleased once the chain has been released.
//
// # Backend Registration
//
// Backends register themselves via blank imports:
//
//	_ "github.com/SnowflakePowered/librashader-go/hal/gl"    // OpenGL 3.3 core
//	_ "github.com/SnowflakePowered/librashader-go/hal/noop"  // testing
package librashader
