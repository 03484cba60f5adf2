// Package sound plays short synthesized effects for game events through the
// system speaker. Everything is generated at startup, there are no asset
// files. A Manager that failed to initialize (no audio device, CI) stays
// usable: every Play method becomes a no-op.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Manager owns the speaker and the precomputed effect clips.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	move     clip
	rotate   clip
	lock     clip
	clears   [5]clip
	levelUp  clip
	gameOver clip
}

// NewManager creates a manager with all effect clips rendered. The speaker is
// not touched until Initialize.
func NewManager() *Manager {
	m := &Manager{mixer: &beep.Mixer{}}

	m.move = tone(waveSquare, 220, 25*time.Millisecond)
	m.rotate = tone(waveSquare, 330, 30*time.Millisecond)
	m.lock = tone(waveSine, 150, 60*time.Millisecond)

	// One clip per simultaneous clear count; more rows, longer run up the
	// scale. Index 0 is unused.
	m.clears[1] = arpeggio(waveSquare, 45*time.Millisecond, 523.25, 659.25)
	m.clears[2] = arpeggio(waveSquare, 45*time.Millisecond, 523.25, 659.25, 783.99)
	m.clears[3] = arpeggio(waveSquare, 45*time.Millisecond, 523.25, 659.25, 783.99, 1046.50)
	m.clears[4] = arpeggio(waveSquare, 55*time.Millisecond, 523.25, 659.25, 783.99, 1046.50, 1318.51)

	m.levelUp = arpeggio(waveSine, 70*time.Millisecond, 440, 554.37, 659.25, 880)
	m.gameOver = arpeggio(waveSquare, 160*time.Millisecond, 392, 311.13, 246.94, 196)

	return m
}

// Initialize opens the speaker and attaches the mixer. Safe to call more
// than once.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup silences everything. The speaker itself has no close in beep, so
// an emptied mixer is as shut down as it gets.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.mixer.Clear()
	m.initialized = false
}

// SetMuted toggles output without tearing down the speaker.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports whether output is currently suppressed.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Manager) play(buf clip, gain float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted || len(buf) == 0 {
		return
	}
	m.mixer.Add(newClipStreamer(buf, gain))
}

// PlayMove clicks on a successful horizontal shift.
func (m *Manager) PlayMove() { m.play(m.move, 0.10) }

// PlayRotate clicks slightly higher on a successful rotation.
func (m *Manager) PlayRotate() { m.play(m.rotate, 0.10) }

// PlayLock thuds when a piece settles into the stack.
func (m *Manager) PlayLock() { m.play(m.lock, 0.25) }

// PlayClear plays the jingle for n simultaneously cleared rows (1..4).
func (m *Manager) PlayClear(n int) {
	if n < 1 {
		return
	}
	if n > 4 {
		n = 4
	}
	m.play(m.clears[n], 0.20)
}

// PlayLevelUp celebrates a level increase.
func (m *Manager) PlayLevelUp() { m.play(m.levelUp, 0.20) }

// PlayGameOver plays the descending end-of-game phrase.
func (m *Manager) PlayGameOver() { m.play(m.gameOver, 0.25) }
