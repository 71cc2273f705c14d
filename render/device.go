package render

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// Device bundles the WebGPU handles needed to upload model buffers. It is
// acquired headless; surface/swapchain setup belongs to the window layer.
type Device struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
}

func NewDevice() (*Device, error) {
	instance := wgpu.CreateInstance(nil)

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, errors.Wrap(err, "Failed to request WebGPU adapter")
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(err, "Failed to request WebGPU device")
	}

	return &Device{
		Instance: instance,
		Adapter:  adapter,
		Device:   device,
		Queue:    device.GetQueue(),
	}, nil
}

// MinUniformAlignment returns the dynamic uniform offset alignment the
// adapter requires. Attachment uniform strides are padded to it.
func (d *Device) MinUniformAlignment() uint64 {
	alignment := uint64(d.Adapter.GetLimits().Limits.MinUniformBufferOffsetAlignment)
	if alignment == 0 {
		alignment = 256
	}
	return alignment
}

func (d *Device) Release() {
	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}
	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}
	if d.Instance != nil {
		d.Instance.Release()
		d.Instance = nil
	}
}
