package video

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// WavSynthesizer renders the narration track as a PCM WAV file paced at
// wordsPerSecond. It produces a placeholder tone track sized to the
// script; swapping in a real TTS backend only means replacing this type.
type WavSynthesizer struct {
	wordsPerSecond int
}

func NewWavSynthesizer(wordsPerSecond int) *WavSynthesizer {
	if wordsPerSecond <= 0 {
		wordsPerSecond = 3
	}
	return &WavSynthesizer{wordsPerSecond: wordsPerSecond}
}

const (
	sampleRate = 22050
	toneHz     = 220.0
)

func (s *WavSynthesizer) Synthesize(ctx context.Context, script string, path string) error {
	words := len(strings.Fields(script))
	if words == 0 {
		return fmt.Errorf("empty script")
	}

	seconds := float64(words) / float64(s.wordsPerSecond)
	if seconds < 1 {
		seconds = 1
	}
	samples := int(seconds * sampleRate)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer f.Close()

	if err := writeWavHeader(f, samples); err != nil {
		return err
	}

	buf := make([]byte, 2)
	for i := 0; i < samples; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// quiet sine with a slow fade so the track isn't grating
		t := float64(i) / sampleRate
		fade := 1.0 - t/seconds
		v := int16(3000 * fade * math.Sin(2*math.Pi*toneHz*t))
		binary.LittleEndian.PutUint16(buf, uint16(v))
		if _, err := f.Write(buf); err != nil {
			return fmt.Errorf("write audio samples: %w", err)
		}
	}
	return nil
}

// writeWavHeader writes a canonical 44-byte PCM header for 16-bit mono
func writeWavHeader(f *os.File, samples int) error {
	dataLen := samples * 2

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)                // PCM chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)                 // PCM format
	binary.LittleEndian.PutUint16(header[22:24], 1)                 // mono
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)        // sample rate
	binary.LittleEndian.PutUint32(header[28:32], sampleRate*2)      // byte rate
	binary.LittleEndian.PutUint16(header[32:34], 2)                 // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)                // bits per sample
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	_, err := f.Write(header[:])
	return err
}

// wavDuration reads the duration of a PCM WAV file from its header
func wavDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var header [44]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return 0, fmt.Errorf("read wav header: %w", err)
	}

	byteRate := binary.LittleEndian.Uint32(header[28:32])
	dataLen := binary.LittleEndian.Uint32(header[40:44])
	if byteRate == 0 {
		return 0, fmt.Errorf("invalid wav header in %s", path)
	}
	return float64(dataLen) / float64(byteRate), nil
}
