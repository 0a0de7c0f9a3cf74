package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue is a short sound tied to a match event
type Cue int

const (
	CueScore   Cue = iota // Normal make
	CuePerfect            // Perfect make
	CueBonus              // Backboard bonus activated
	CueFireOn             // Fire mode started
	CueFireOff            // Fire mode ended
	CueBuzzer             // Match over
	CueWarning            // Final seconds tick
	cueCount
)

var cueNames = [cueCount]string{"score", "perfect", "bonus", "fire_on", "fire_off", "buzzer", "warning"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Synthesize builds a fresh, finite streamer for cue
func Synthesize(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueScore:
		return tone(660, 120*time.Millisecond, WaveSine, rate)

	case CuePerfect:
		// Fundamental with an octave-and-fifth overtone
		d := 220 * time.Millisecond
		return beep.Mix(
			withVolume(tone(880, d, WaveSine, rate), 0.7),
			withVolume(tone(1320, d, WaveSine, rate), 0.3),
		)

	case CueBonus:
		return beep.Seq(
			tone(988, 90*time.Millisecond, WaveSine, rate),
			tone(1319, 160*time.Millisecond, WaveSine, rate),
		)

	case CueFireOn:
		return beep.Seq(
			withVolume(tone(220, 100*time.Millisecond, WaveSaw, rate), 0.5),
			withVolume(tone(330, 100*time.Millisecond, WaveSaw, rate), 0.5),
			withVolume(tone(440, 160*time.Millisecond, WaveSaw, rate), 0.5),
		)

	case CueFireOff:
		return beep.Seq(
			tone(330, 120*time.Millisecond, WaveSine, rate),
			tone(220, 180*time.Millisecond, WaveSine, rate),
		)

	case CueBuzzer:
		d := 800 * time.Millisecond
		return beep.Mix(
			withVolume(tone(110, d, WaveSquare, rate), 0.4),
			withVolume(tone(0, d, WaveNoise, rate), 0.1),
		)

	case CueWarning:
		return withVolume(tone(1000, 60*time.Millisecond, WaveSquare, rate), 0.3)
	}
	return beep.Silence(0)
}
