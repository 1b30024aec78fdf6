// Package render draws editor text on a GPU device owned by the host.
//
// The host creates the window and the device and hands them over, either
// as raw wgpu HAL objects or as a gpucontext.DeviceProvider that also
// exposes HalDevice and HalQueue. fim never creates a device itself.
//
// A frame looks like this:
//
//	r.BeginScene()
//	l := r.DrawText(0, 0, ed.Text(), text.NoWrap, &text.CursorPos{Line: line, Char: char})
//	cam.Follow(l.CursorX, l.CursorY, l.Advance, l.Height, cfg.Camera.FollowStrength, cfg.Camera.LookatStrength)
//	err := r.Flush(surfaceView, cam.ViewProj())
//
// Input connects a gpucontext.EventSource to an editor and a camera.
package render
