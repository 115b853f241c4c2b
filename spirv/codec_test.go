package spirv_test

import (
	"testing"

	"github.com/SnowflakePowered/librashader-go/spirv"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ubo := spirv.NewBlockBuilder(0, []spirv.Member{
		{Name: "MVP", Type: spirv.TypeMat4},
		{Name: "OutputSize", Type: spirv.TypeVec4},
		{Name: "FrameCount", Type: spirv.TypeFloat},
	})

	m := &spirv.Module{
		Stage: spirv.StageFragment,
		UBO:   ubo,
		Samplers: []spirv.Sampler{
			{Name: "Source", Binding: 1},
			{Name: "LUT", Binding: 2},
		},
	}

	words := spirv.Encode(m)
	decoded, err := spirv.Decode(words)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.Stage != spirv.StageFragment {
		t.Errorf("stage = %v", decoded.Stage)
	}
	if decoded.UBO == nil || decoded.UBO.Size != ubo.Size || decoded.UBO.Binding != 0 {
		t.Fatalf("ubo = %+v, want %+v", decoded.UBO, ubo)
	}
	if len(decoded.UBO.Members) != 3 {
		t.Fatalf("got %d members, want 3", len(decoded.UBO.Members))
	}
	for i, m := range decoded.UBO.Members {
		if m != ubo.Members[i] {
			t.Errorf("member %d = %+v, want %+v", i, m, ubo.Members[i])
		}
	}
	if len(decoded.Samplers) != 2 || decoded.Samplers[0].Name != "Source" || decoded.Samplers[1].Binding != 2 {
		t.Errorf("samplers = %+v", decoded.Samplers)
	}
}

func TestStd140Packing(t *testing.T) {
	blk := spirv.NewBlockBuilder(0, []spirv.Member{
		{Name: "a", Type: spirv.TypeFloat},
		{Name: "b", Type: spirv.TypeVec4},
		{Name: "c", Type: spirv.TypeFloat},
	})
	if blk.Members[0].Offset != 0 {
		t.Errorf("a offset = %d, want 0", blk.Members[0].Offset)
	}
	if blk.Members[1].Offset != 16 {
		t.Errorf("b offset = %d, want 16 (vec4 aligns to 16)", blk.Members[1].Offset)
	}
	if blk.Members[2].Offset != 32 {
		t.Errorf("c offset = %d, want 32", blk.Members[2].Offset)
	}
	if blk.Size != 48 {
		t.Errorf("size = %d, want 48 (padded to 16)", blk.Size)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := spirv.Decode([]uint32{1, 2, 3})
	if err != spirv.ErrBadMagic {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}
