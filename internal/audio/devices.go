package audio

import (
	"fmt"

	"github.com/gen2brain/malgo"
)

// Device describes one capture device available to the recorder.
type Device struct {
	Name      string
	IsDefault bool
}

// CaptureDevices lists the capture devices known to the audio backend,
// so users can pick mic_device / system_device values for the config.
func CaptureDevices() ([]Device, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("audio: initializing context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("audio: listing capture devices: %w", err)
	}

	devices := make([]Device, 0, len(infos))
	for i := range infos {
		devices = append(devices, Device{
			Name:      infos[i].Name(),
			IsDefault: infos[i].IsDefault != 0,
		})
	}
	return devices, nil
}
