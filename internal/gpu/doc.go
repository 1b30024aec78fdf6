// Package gpu owns the GPU side of text rendering: the curve text shader,
// its render pipeline, and the buffers mirroring the glyph curve pool and
// the per-frame glyph quads.
//
// It talks to the device through the gogpu/wgpu HAL, so any backend (Vulkan,
// Metal, DX12, GLES, software or noop) can drive it. Shaders are WGSL,
// optionally compiled to SPIR-V with naga.
package gpu
