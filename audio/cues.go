// Package audio plays the short start/stop cues. The tones are synthesized
// once at startup into beep buffers, so no sound assets are shipped.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate beep.SampleRate = 44100

// Cue names a sound.
type Cue int

const (
	CueStart Cue = iota
	CueStop
	CueError
)

var cueTones = map[Cue]struct {
	freq float64
	dur  time.Duration
}{
	CueStart: {freq: 880, dur: 90 * time.Millisecond},
	CueStop:  {freq: 440, dur: 120 * time.Millisecond},
	CueError: {freq: 220, dur: 200 * time.Millisecond},
}

// Player holds the pre-rendered cues.
type Player struct {
	buffers     map[Cue]*beep.Buffer
	speakerLock sync.Mutex
}

// NewPlayer initializes the speaker and renders every cue. When the speaker
// cannot be opened it returns a Player that stays silent.
func NewPlayer() *Player {
	p := &Player{buffers: make(map[Cue]*beep.Buffer)}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio disabled: Failed to initialize speaker: %v", err)
		return p
	}

	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	for cue, tone := range cueTones {
		sine, err := generators.SineTone(sampleRate, tone.freq)
		if err != nil {
			log.Printf("Failed to generate tone %v Hz: %v", tone.freq, err)
			continue
		}
		buffer := beep.NewBuffer(format)
		buffer.Append(&effects.Gain{Streamer: beep.Take(sampleRate.N(tone.dur), sine), Gain: -0.8})
		p.buffers[cue] = buffer
	}
	return p
}

// Play plays a cue without blocking.
func (p *Player) Play(c Cue) {
	if p == nil {
		return
	}
	b, ok := p.buffers[c]
	if !ok {
		return
	}

	p.speakerLock.Lock()
	defer p.speakerLock.Unlock()

	speaker.Play(b.Streamer(0, b.Len()))
}
