package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/himanishpuri/ChordsOfSongs/pkg/chords"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 960
	beatsPerChord   = 4
	cueChannel      = 0
	cueVelocity     = 90
	// pitch class 0 lands on C3
	cueBaseKey = 48
	// GM acoustic grand piano
	cueProgram = 0
)

// TempoForSpeed maps a song's speed label to a playback tempo.
func TempoForSpeed(speed string) float64 {
	switch strings.ToLower(speed) {
	case "fast":
		return 120
	case "slow":
		return 80
	default:
		return 100
	}
}

// WriteMIDI writes a single-track SMF1 file that sounds the root of every
// chord in progression for one bar each. Chords without a recognizable
// root become a bar of rest.
func WriteMIDI(w io.Writer, title string, bpm float64, progression []string) error {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	tempo := smf.Track{}
	tempo = append(tempo, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTrackSequenceName("Tempo"))})
	tempo = append(tempo, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTempo(bpm))})
	tempo = append(tempo, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTimeSig(4, 4, 24, 8))})
	tempo = append(tempo, smf.Event{Delta: 0, Message: smf.EOT})
	s.Add(tempo)
	s.Add(cueTrack(title, progression))

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing midi: %w", err)
	}
	return nil
}

func cueTrack(title string, progression []string) smf.Track {
	const bar = uint32(ticksPerQuarter * beatsPerChord)

	track := smf.Track{}
	track = append(track, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTrackSequenceName(title))})
	track = append(track, smf.Event{Delta: 0, Message: smf.Message(midi.ProgramChange(cueChannel, cueProgram))})

	var rest uint32
	for _, glyph := range progression {
		pc, ok := chords.ChordRoot(glyph)
		if !ok {
			rest += bar
			continue
		}
		key := uint8(cueBaseKey + int(pc))
		track = append(track, smf.Event{Delta: rest, Message: smf.Message(smf.MetaLyric(glyph))})
		track = append(track, smf.Event{Delta: 0, Message: smf.Message(midi.NoteOn(cueChannel, key, cueVelocity))})
		track = append(track, smf.Event{Delta: bar, Message: smf.Message(midi.NoteOff(cueChannel, key))})
		rest = 0
	}

	track = append(track, smf.Event{Delta: rest, Message: smf.EOT})
	return track
}
