// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host owns the window and the device. fim RECEIVES the device, it
// does NOT create one. A handle usable by NewTextRendererFromProvider
// must also expose the HAL objects:
//
//	func (h *handle) HalDevice() any { return h.device } // hal.Device
//	func (h *handle) HalQueue() any  { return h.queue }  // hal.Queue
type DeviceHandle = gpucontext.DeviceProvider

// Device errors.
var (
	// ErrNoHAL is returned when a DeviceHandle does not expose HAL objects.
	ErrNoHAL = errors.New("render: device provider does not expose HAL device and queue")

	// ErrNilDevice is returned when the device or queue is nil.
	ErrNilDevice = errors.New("render: nil device or queue")
)

type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halFromProvider extracts the HAL device and queue behind p.
func halFromProvider(p DeviceHandle) (hal.Device, hal.Queue, error) {
	hp, ok := p.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, ErrNoHAL
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrNoHAL
	}
	return device, queue, nil
}

// targetFormat picks the colour format: the configured one, else the
// provider's surface format.
func targetFormat(cfg gputypes.TextureFormat, p DeviceHandle) gputypes.TextureFormat {
	if cfg != gputypes.TextureFormatUndefined || p == nil {
		return cfg
	}
	return p.SurfaceFormat()
}

// NullDeviceHandle is a DeviceHandle without a GPU. Renderers cannot be
// created from it; it stands in where a host has no device yet.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports an unknown adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
