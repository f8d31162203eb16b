package rowan

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// CapAudio tags sound-producing components.
var CapAudio = NewCapability("audio")

// audioSampleRate is the fixed engine sample rate. Every generator renders
// at this rate so streamers never need resampling.
const audioSampleRate = beep.SampleRate(48000)

var (
	audioMu    sync.Mutex
	audioMixer = &beep.Mixer{}
	audioReady bool
)

// InitAudio opens the speaker and starts the global mixer. Call it once at
// startup; calling again after success is a no-op. Without a successful
// InitAudio every Play on a SoundEmitter is a silent no-op, so headless
// builds and tests need no audio device.
func InitAudio() error {
	audioMu.Lock()
	defer audioMu.Unlock()

	if audioReady {
		return nil
	}
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(audioMixer)
	audioReady = true
	return nil
}

// AudioReady reports whether InitAudio has succeeded.
func AudioReady() bool {
	audioMu.Lock()
	defer audioMu.Unlock()
	return audioReady
}

func playStreamer(s beep.Streamer) {
	audioMu.Lock()
	defer audioMu.Unlock()
	if !audioReady {
		return
	}
	audioMixer.Add(s)
}

// SoundEmitter plays short procedural sounds through the global mixer.
// The zero value is silent (zero gain); use NewSoundEmitter for unit gain.
type SoundEmitter struct {
	Base

	// Gain scales this emitter's output, 0..1.
	Gain float64
}

// NewSoundEmitter returns an emitter with unit gain.
func NewSoundEmitter() *SoundEmitter {
	return &SoundEmitter{Gain: 1}
}

// Capabilities implements Component.
func (s *SoundEmitter) Capabilities() []Capability {
	return []Capability{CapAudio}
}

// PlayTone plays a sine tone at freq Hz for the given duration.
func (s *SoundEmitter) PlayTone(freq float64, d time.Duration) {
	playStreamer(beep.Take(audioSampleRate.N(d), &toneGenerator{freq: freq, gain: s.Gain}))
}

// PlaySquare plays a square tone at freq Hz for the given duration.
func (s *SoundEmitter) PlaySquare(freq float64, d time.Duration) {
	playStreamer(beep.Take(audioSampleRate.N(d), &squareGenerator{freq: freq, gain: s.Gain}))
}

// PlayNoise plays a decaying noise burst for the given duration.
func (s *SoundEmitter) PlayNoise(d time.Duration) {
	playStreamer(beep.Take(audioSampleRate.N(d), &noiseGenerator{
		gain: s.Gain,
		seed: time.Now().UnixNano(),
	}))
}

// --- Generators ---

type toneGenerator struct {
	freq float64
	gain float64
	pos  int
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(audioSampleRate)

		// Short attack envelope avoids a click at note start.
		envelope := math.Min(t/0.01, 1)
		v := g.gain * 0.2 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}

type squareGenerator struct {
	freq float64
	gain float64
	pos  int
}

func (g *squareGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(audioSampleRate)

		envelope := math.Min(t/0.01, 1)
		v := g.gain * 0.12 * envelope
		if math.Sin(2*math.Pi*g.freq*t) < 0 {
			v = -v
		}

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *squareGenerator) Err() error {
	return nil
}

type noiseGenerator struct {
	gain float64
	seed int64
	pos  int
}

func (g *noiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(audioSampleRate)

		// Quick attack, exponential decay.
		envelope := math.Exp(-t * 8)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		v := g.gain * 0.25 * envelope * noise
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *noiseGenerator) Err() error {
	return nil
}
