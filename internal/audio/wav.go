package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes float32 samples as a 16-bit PCM WAV file at path.
func WriteWAV(path string, samples []float32, sampleRate, channels uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}

	enc := wav.NewEncoder(f, int(sampleRate), 16, int(channels), 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(channels),
			SampleRate:  int(sampleRate),
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(float32ToPCM16(s))
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("writing wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing wav file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing wav file: %w", err)
	}
	return nil
}

// float32ToPCM16 converts a [-1, 1] float sample to 16-bit PCM, clamping
// out-of-range values instead of letting them wrap.
func float32ToPCM16(s float32) int16 {
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return int16(s * 32767)
}
