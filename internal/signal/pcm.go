// SPDX-License-Identifier: MIT
package signal

import (
	"fmt"

	"github.com/go-audio/audio"
)

// FromPCM builds a Signal from a go-audio buffer, as produced by capture
// engines and decoders. Only the first channel of interleaved data is kept.
// Integer buffers with a known source bit depth are normalised to [-1, 1).
func FromPCM(buf audio.Buffer, startTime float64) (*Signal, error) {
	if buf == nil {
		return nil, fmt.Errorf("pcm buffer is nil: %w", ErrInsufficientData)
	}
	format := buf.PCMFormat()
	if format == nil || format.SampleRate <= 0 {
		return nil, fmt.Errorf("pcm buffer has no sample rate")
	}
	channels := max(format.NumChannels, 1)

	scale := 1.0
	if ib, ok := buf.(*audio.IntBuffer); ok && ib.SourceBitDepth > 0 {
		scale = 1.0 / float64(uint64(1)<<(ib.SourceBitDepth-1))
	}

	fb := buf.AsFloatBuffer()
	frames := len(fb.Data) / channels
	samples := make([]float32, frames)
	for i := range frames {
		samples[i] = float32(fb.Data[i*channels] * scale)
	}

	return New(samples, startTime, 1/float64(format.SampleRate)), nil
}
