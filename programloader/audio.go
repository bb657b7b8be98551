// This file is part of Goric.
//
// Goric is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Goric is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Goric.  If not, see <https://www.gnu.org/licenses/>.

package programloader

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/logger"
)

// tag string used in calls to Log().
const audioLogTag = "programloader: audio"

// the fast tape encoding distinguishes bits by cycle period. periods at or
// below the split (in microseconds) read as a one.
const bitPeriodSplit = 300.0

type pcmData struct {
	totalTime  float64 // in seconds
	sampleRate float64

	// data is mono data (taken from the left channel in the case of stereo
	// source files)
	data []float32
}

func getPCM(ld Loader) (pcmData, error) {
	p := pcmData{
		data: make([]float32, 0),
	}

	switch strings.ToLower(filepath.Ext(ld.Filename)) {
	case ".wav":
		dec := wav.NewDecoder(bytes.NewReader(ld.Data))
		if dec == nil {
			return p, curated.Errorf(LoadError, "wav: error decoding")
		}

		if !dec.IsValidFile() {
			return p, curated.Errorf(LoadError, "wav: not a valid wav file")
		}

		logger.Log(audioLogTag, "loading from wav file")

		// load all data at once
		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return p, curated.Errorf(LoadError, fmt.Sprintf("wav: %v", err))
		}

		p.data = leftChannel(buf, int(dec.NumChans))
		p.sampleRate = float64(dec.SampleRate)

		dur, err := dec.Duration()
		if err != nil {
			return p, curated.Errorf(LoadError, fmt.Sprintf("wav: %v", err))
		}
		p.totalTime = dur.Seconds()

	case ".mp3":
		dec, err := mp3.NewDecoder(bytes.NewReader(ld.Data))
		if err != nil {
			return p, curated.Errorf(LoadError, fmt.Sprintf("mp3: %v", err))
		}

		logger.Log(audioLogTag, "loading from mp3 file")

		err = nil
		chunk := make([]byte, 4096)
		for err != io.EOF {
			var chunkLen int
			chunkLen, err = dec.Read(chunk)
			if err != nil && err != io.EOF {
				return p, curated.Errorf(LoadError, fmt.Sprintf("mp3: %v", err))
			}

			// index increment of 4 because:
			//  - the stream is always two bytes per sample per channel
			//  - we only want the left channel
			for i := 2; i < chunkLen; i += 4 {
				// little endian 16 bit sample
				f := int(chunk[i]) | (int(chunk[i+1]) << 8)

				// adjust value if it is not zero (same as interpreting
				// as two's complement)
				if f != 0 {
					f -= 32768
				}

				p.data = append(p.data, float32(f))
			}
		}

		p.sampleRate = float64(dec.SampleRate())
		p.totalTime = float64(len(p.data)) / p.sampleRate

	default:
		return p, curated.Errorf(LoadError, "not an audio file")
	}

	logger.Logf(audioLogTag, "sample rate: %0.2fHz", p.sampleRate)
	logger.Logf(audioLogTag, "total time: %.02fs", p.totalTime)

	return p, nil
}

// leftChannel extracts the first channel of an interleaved PCM buffer as
// float32 samples.
func leftChannel(buf audio.Buffer, numChans int) []float32 {
	floatBuf := buf.AsFloat32Buffer()
	data := make([]float32, 0, len(floatBuf.Data)/numChans)
	for i := 0; i < len(floatBuf.Data); i += numChans {
		data = append(data, floatBuf.Data[i])
	}
	return data
}

// pulsesToBits reduces the sample stream to a bit stream by measuring the
// period between rising zero crossings.
func pulsesToBits(p pcmData) []uint8 {
	bits := []uint8{}

	timePerSample := 1000000.0 / p.sampleRate

	last := float32(0.0)
	lastCrossing := -1
	for i, s := range p.data {
		if !(last <= 0.0 && s > 0.0) {
			last = s
			continue
		}
		last = s

		if lastCrossing >= 0 {
			period := float64(i-lastCrossing) * timePerSample
			if period <= bitPeriodSplit {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
		lastCrossing = i
	}

	return bits
}

// frameBytes assembles the bit stream into bytes. Each byte is framed by a
// zero start bit and followed by a parity bit and stop bits; the stream
// idles at one between bytes.
func frameBytes(bits []uint8) []byte {
	r := []byte{}

	i := 0
	for i < len(bits) {
		if bits[i] != 0 {
			i++
			continue
		}

		// start bit found. need eight data bits and the parity bit
		if i+9 >= len(bits) {
			break
		}

		var b uint8
		for n := 0; n < 8; n++ {
			b |= bits[i+1+n] << n
		}

		// parity is not checked; a real machine would ask for the tape to
		// be rewound but we have nothing to rewind
		i += 10
		r = append(r, b)
	}

	return r
}

// DecodeAudioTape converts an audio recording of a tape into the tape's
// file blocks.
func DecodeAudioTape(ld Loader) ([]Block, error) {
	pcm, err := getPCM(ld)
	if err != nil {
		return nil, err
	}

	b := frameBytes(pulsesToBits(pcm))
	logger.Logf(audioLogTag, "%d bytes recovered from recording", len(b))

	return ParseTape(ld.ShortName(), b)
}
