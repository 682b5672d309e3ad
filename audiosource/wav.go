package audiosource

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// DecodeWAV decodes integer PCM WAV data.
func DecodeWAV(r io.ReadSeeker) (Source, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a wav file", ErrInvalidFile)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav format %d is not integer PCM", ErrInvalidFile, dec.WavAudioFormat)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	bits := int(dec.BitDepth)
	if !supportedBitDepth(bits) {
		return nil, fmt.Errorf("%w: %d-bit wav", ErrInvalidFile, bits)
	}
	if dec.NumChans == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrInvalidFile)
	}
	return newIntSource(dec, int(dec.SampleRate), int(dec.NumChans), bits, true), nil
}
