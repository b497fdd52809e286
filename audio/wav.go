// Package audio wraps raw speech-synthesis output in a playable container.
package audio

import (
	"encoding/binary"
	"fmt"
)

const (
	headerSize    = 44
	numChannels   = 1
	bitsPerSample = 16
)

// WrapPCM builds a standard uncompressed WAV file around raw mono 16-bit
// PCM samples. The 44-byte header layout is fixed; players are strict
// about it.
func WrapPCM(pcm []byte, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("no PCM data")
	}

	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	buf := make([]byte, headerSize+len(pcm))

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(pcm)))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // audio format: PCM
	binary.LittleEndian.PutUint16(buf[22:24], numChannels)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(pcm)))
	copy(buf[headerSize:], pcm)

	return buf, nil
}

// Format describes a parsed WAV file.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// ParseWAV decodes the container produced by WrapPCM and returns the raw
// PCM samples plus the declared format.
func ParseWAV(data []byte) ([]byte, Format, error) {
	if len(data) < headerSize {
		return nil, Format{}, fmt.Errorf("wav too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, Format{}, fmt.Errorf("not a RIFF/WAVE file")
	}
	if string(data[12:16]) != "fmt " {
		return nil, Format{}, fmt.Errorf("missing fmt chunk")
	}
	if got := binary.LittleEndian.Uint16(data[20:22]); got != 1 {
		return nil, Format{}, fmt.Errorf("unsupported audio format %d", got)
	}

	f := Format{
		Channels:      int(binary.LittleEndian.Uint16(data[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(data[24:28])),
		BitsPerSample: int(binary.LittleEndian.Uint16(data[34:36])),
	}

	if string(data[36:40]) != "data" {
		return nil, Format{}, fmt.Errorf("missing data chunk")
	}
	size := binary.LittleEndian.Uint32(data[40:44])
	if int(size) > len(data)-headerSize {
		return nil, Format{}, fmt.Errorf("data chunk size %d exceeds file", size)
	}

	return data[headerSize : headerSize+int(size)], f, nil
}

// PCMDuration returns the playback length in seconds of raw mono 16-bit
// PCM at the given sample rate.
func PCMDuration(pcm []byte, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	samples := len(pcm) / (numChannels * bitsPerSample / 8)
	return float64(samples) / float64(sampleRate)
}
