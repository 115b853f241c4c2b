package filterchain

import (
	"github.com/SnowflakePowered/librashader-go/codegen"
	"github.com/SnowflakePowered/librashader-go/hal"
	"github.com/SnowflakePowered/librashader-go/preset"
	"github.com/SnowflakePowered/librashader-go/reflect"
	"github.com/SnowflakePowered/librashader-go/types"
)

// passState is one pass's runtime resources: its pipeline, reflection,
// uniform ring, and the output/feedback attachment pair that rotates at
// frame end.
type passState struct {
	cfg  preset.PassConfig
	refl *reflect.ShaderReflection
	ctx  *codegen.CompilerContext

	pipeline hal.Pipeline

	output   hal.Texture
	feedback hal.Texture
	size     types.Size

	uboRing  []hal.Buffer
	pushRing []hal.Buffer
	ringPos  int

	sampler hal.Sampler
}

func wrapModeOf(w preset.WrapMode) hal.WrapMode {
	switch w {
	case preset.WrapClampToEdge:
		return hal.WrapClampToEdge
	case preset.WrapRepeat:
		return hal.WrapRepeat
	case preset.WrapMirroredRepeat:
		return hal.WrapMirroredRepeat
	default:
		return hal.WrapClampToBorder
	}
}

func filterModeOf(f preset.FilterMode) hal.FilterMode {
	if f == preset.FilterNearest {
		return hal.FilterNearest
	}
	return hal.FilterLinear
}
