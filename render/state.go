// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/scene3d"
	"github.com/gogpu/scene3d/backend"
	"github.com/gogpu/scene3d/resource"
)

// MaxTextureSlots is the number of texture slots a RenderState carries.
const MaxTextureSlots = 4

// TextureTransform scales, rotates and offsets texture coordinates.
type TextureTransform struct {
	Scale    mgl32.Vec2
	Rotation float32 // radians
	Offset   mgl32.Vec2
}

// Matrix returns the homogeneous 2D matrix Offset · Rotation · Scale.
func (t TextureTransform) Matrix() mgl32.Mat3 {
	return mgl32.Translate2D(t.Offset.X(), t.Offset.Y()).
		Mul3(mgl32.HomogRotate2D(t.Rotation)).
		Mul3(mgl32.Scale2D(t.Scale.X(), t.Scale.Y()))
}

// RenderState is the GPU state a Drawable is drawn with.
//
// The zero value is not the default state; use NewRenderState.
type RenderState struct {
	textures     [MaxTextureSlots]resource.Texture
	textureCount int
	texTransform *TextureTransform
	mesh         resource.Mesh
	blend        bool
	cull         gputypes.CullMode
	color        scene3d.Color
}

// NewRenderState returns the state a freshly initialized backend is in:
// no textures, no mesh, no culling, white tint.
func NewRenderState() RenderState {
	return RenderState{
		cull:  gputypes.CullModeNone,
		color: scene3d.White,
	}
}

// Texture returns the texture in slot, or nil.
func (s *RenderState) Texture(slot int) resource.Texture {
	if slot < 0 || slot >= MaxTextureSlots {
		return nil
	}
	return s.textures[slot]
}

// SetTexture places tex in slot. A nil tex empties the slot.
// Out of range slots are ignored.
func (s *RenderState) SetTexture(slot int, tex resource.Texture) {
	if slot < 0 || slot >= MaxTextureSlots {
		return
	}
	s.textures[slot] = tex
	s.textureCount = 0
	for i := MaxTextureSlots - 1; i >= 0; i-- {
		if s.textures[i] != nil {
			s.textureCount = i + 1
			break
		}
	}
}

// ClearTextures empties every slot.
func (s *RenderState) ClearTextures() {
	s.textures = [MaxTextureSlots]resource.Texture{}
	s.textureCount = 0
}

// TextureCount returns one past the highest occupied slot.
func (s *RenderState) TextureCount() int { return s.textureCount }

// TextureTransform returns the texture transform, or nil.
func (s *RenderState) TextureTransform() *TextureTransform { return s.texTransform }

// SetTextureTransform sets the texture transform. Nil removes it.
func (s *RenderState) SetTextureTransform(t *TextureTransform) { s.texTransform = t }

// Mesh returns the mesh.
func (s *RenderState) Mesh() resource.Mesh { return s.mesh }

// SetMesh sets the mesh.
func (s *RenderState) SetMesh(m resource.Mesh) { s.mesh = m }

// Blend reports whether blending was explicitly requested.
func (s *RenderState) Blend() bool { return s.blend }

// SetBlend requests alpha blending.
func (s *RenderState) SetBlend(blend bool) { s.blend = blend }

// Cull returns the cull mode.
func (s *RenderState) Cull() gputypes.CullMode { return s.cull }

// SetCull sets the cull mode.
func (s *RenderState) SetCull(mode gputypes.CullMode) { s.cull = mode }

// Color returns the tint color.
func (s *RenderState) Color() scene3d.Color { return s.color }

// SetColor sets the tint color.
func (s *RenderState) SetColor(c scene3d.Color) { s.color = c }

// AlphaRequired reports whether the state draws with blending: blending was
// requested or no texture is bound.
func (s *RenderState) AlphaRequired() bool {
	return s.blend || s.textureCount == 0
}

// CommitChanges issues to b only the state that differs from prev, the state
// of the immediately preceding draw.
//
// The texture transform is reloaded only when its presence changes, not when
// two present transforms hold different values.
func (s *RenderState) CommitChanges(b backend.Backend, prev *RenderState) {
	n := max(s.textureCount, prev.textureCount)
	for i := range n {
		var tex resource.Texture
		if i < s.textureCount {
			tex = s.textures[i]
		}
		if tex != prev.textures[i] {
			b.BindTexture(i, tex)
		}
	}

	if (s.texTransform == nil) != (prev.texTransform == nil) {
		if s.texTransform != nil {
			b.SetTextureTransform(s.texTransform.Matrix())
		} else {
			b.SetTextureTransform(mgl32.Ident3())
		}
	}

	if s.mesh != prev.mesh {
		b.BindMesh(s.mesh)
	}

	if alpha := s.AlphaRequired(); alpha != prev.AlphaRequired() {
		b.SetBlending(alpha)
	}

	if s.cull != prev.cull {
		b.SetCullMode(s.cull)
	}

	b.SetColor(s.color)
}

// Apply issues the whole state to b without diffing.
func (s *RenderState) Apply(b backend.Backend) {
	for i := range MaxTextureSlots {
		b.BindTexture(i, s.textures[i])
	}
	if s.texTransform != nil {
		b.SetTextureTransform(s.texTransform.Matrix())
	} else {
		b.SetTextureTransform(mgl32.Ident3())
	}
	b.BindMesh(s.mesh)
	b.SetBlending(s.AlphaRequired())
	b.SetCullMode(s.cull)
	b.SetColor(s.color)
}

// Distance is a coarse count of the state changes drawing b right after a
// would cost: one per differing texture slot, two for a different mesh, one
// each for a blending or cull mode change.
func Distance(a, b *RenderState) int {
	d := 0
	for i := range MaxTextureSlots {
		if a.textures[i] != b.textures[i] {
			d++
		}
	}
	if a.mesh != b.mesh {
		d += 2
	}
	if a.AlphaRequired() != b.AlphaRequired() {
		d++
	}
	if a.cull != b.cull {
		d++
	}
	return d
}
