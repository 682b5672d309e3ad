package audiosource

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
)

// DecodeAIFF decodes uncompressed AIFF data.
func DecodeAIFF(r io.ReadSeeker) (Source, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an aiff file", ErrInvalidFile)
	}
	dec.ReadInfo()

	bits := int(dec.BitDepth)
	if !supportedBitDepth(bits) {
		return nil, fmt.Errorf("%w: %d-bit aiff", ErrInvalidFile, bits)
	}
	format := dec.Format()
	if format == nil || format.NumChannels == 0 {
		return nil, fmt.Errorf("%w: unsupported aiff layout", ErrInvalidFile)
	}
	return newIntSource(dec, format.SampleRate, format.NumChannels, bits, false), nil
}
