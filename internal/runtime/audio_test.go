package runtime

import (
	"testing"

	"github.com/rs/zerolog"
)

type fakePlayer struct {
	playing, paused  bool
	loadOK           bool
	lastPath         string
	lastData         []byte
	position, dur    uint64
	sampleRate       uint32
	bitrate          uint32
	channels         uint32
	track            string
	updateCalls      int
}

func (f *fakePlayer) LoadAndPlay(path string) bool {
	f.lastPath = path
	if !f.loadOK {
		return false
	}
	f.playing, f.paused = true, false
	f.sampleRate, f.bitrate, f.channels, f.track = 44100, 128000, 2, "track.mp3"
	return true
}

func (f *fakePlayer) LoadAndPlayData(data []byte) bool {
	f.lastData = data
	if !f.loadOK {
		return false
	}
	f.playing, f.paused = true, false
	return true
}

func (f *fakePlayer) IsPlaying() bool    { return f.playing }
func (f *fakePlayer) IsPaused() bool     { return f.paused }
func (f *fakePlayer) TogglePause()       { f.paused = !f.paused }
func (f *fakePlayer) Stop()              { f.playing, f.paused = false, false }
func (f *fakePlayer) Update()            { f.updateCalls++; f.position += 10 }
func (f *fakePlayer) PositionMs() uint64 { return f.position }
func (f *fakePlayer) DurationMs() uint64 { return f.dur }
func (f *fakePlayer) SampleRate() uint32 { return f.sampleRate }
func (f *fakePlayer) Bitrate() uint32    { return f.bitrate }
func (f *fakePlayer) Channels() uint32   { return f.channels }
func (f *fakePlayer) TrackName() string  { return f.track }

type fakeSfx struct {
	played []uint32
	pumps  int
}

func (s *fakeSfx) Play(id uint32) { s.played = append(s.played, id) }
func (s *fakeSfx) Pump()          { s.pumps++ }

func TestHandleAudioCmdLoadAndPlaySucceedsPublishesState(t *testing.T) {
	p := &fakePlayer{loadOK: true}
	state := &sharedState{}
	done := handleAudioCmd(AudioCmd{Kind: AudioLoadAndPlay, Path: "song.mp3"}, p, nil, state, zerolog.Nop())
	if done {
		t.Fatal("expected worker to continue")
	}
	snap := state.get()
	if !snap.Playing || snap.Paused {
		t.Fatalf("got %+v, want playing and not paused", snap)
	}
	if snap.TrackName != "track.mp3" {
		t.Errorf("got track %q", snap.TrackName)
	}
	if p.lastPath != "song.mp3" {
		t.Errorf("player did not receive path, got %q", p.lastPath)
	}
}

func TestHandleAudioCmdLoadFailureClearsPlaying(t *testing.T) {
	p := &fakePlayer{loadOK: false}
	state := &sharedState{}
	state.set(func(s *SharedAudioState) { s.Playing = true })
	handleAudioCmd(AudioCmd{Kind: AudioLoadAndPlay, Path: "bad.mp3"}, p, nil, state, zerolog.Nop())
	if state.get().Playing {
		t.Fatal("expected Playing cleared after failed load")
	}
}

func TestHandleAudioCmdPauseResumeToggles(t *testing.T) {
	p := &fakePlayer{loadOK: true}
	state := &sharedState{}
	handleAudioCmd(AudioCmd{Kind: AudioLoadAndPlay, Path: "x.mp3"}, p, nil, state, zerolog.Nop())

	handleAudioCmd(AudioCmd{Kind: AudioPause}, p, nil, state, zerolog.Nop())
	if !state.get().Paused || !p.paused {
		t.Fatal("expected paused after AudioPause")
	}

	handleAudioCmd(AudioCmd{Kind: AudioResume}, p, nil, state, zerolog.Nop())
	if state.get().Paused || p.paused {
		t.Fatal("expected resumed after AudioResume")
	}
}

func TestHandleAudioCmdStopClearsState(t *testing.T) {
	p := &fakePlayer{loadOK: true}
	state := &sharedState{}
	handleAudioCmd(AudioCmd{Kind: AudioLoadAndPlay, Path: "x.mp3"}, p, nil, state, zerolog.Nop())
	handleAudioCmd(AudioCmd{Kind: AudioStop}, p, nil, state, zerolog.Nop())
	snap := state.get()
	if snap.Playing || snap.Paused {
		t.Fatalf("got %+v, want both false", snap)
	}
	if p.playing {
		t.Fatal("expected player stopped")
	}
}

func TestHandleAudioCmdPlaySfxDelegatesToEngine(t *testing.T) {
	p := &fakePlayer{}
	sfx := &fakeSfx{}
	state := &sharedState{}
	handleAudioCmd(AudioCmd{Kind: AudioPlaySfx, SfxID: 7}, p, sfx, state, zerolog.Nop())
	if len(sfx.played) != 1 || sfx.played[0] != 7 {
		t.Fatalf("got played %v, want [7]", sfx.played)
	}
}

func TestHandleAudioCmdShutdownStopsAndReportsDone(t *testing.T) {
	p := &fakePlayer{loadOK: true}
	state := &sharedState{}
	handleAudioCmd(AudioCmd{Kind: AudioLoadAndPlay, Path: "x.mp3"}, p, nil, state, zerolog.Nop())
	done := handleAudioCmd(AudioCmd{Kind: AudioShutdown}, p, nil, state, zerolog.Nop())
	if !done {
		t.Fatal("expected AudioShutdown to report done")
	}
	if p.playing || state.get().Playing {
		t.Fatal("expected playback stopped on shutdown")
	}
}

func TestAudioHandleSendAndState(t *testing.T) {
	q := NewQueue[AudioCmd](4)
	state := &sharedState{}
	state.set(func(s *SharedAudioState) { s.TrackName = "preset" })
	h := &AudioHandle{queue: q, state: state}

	if !h.Send(AudioCmd{Kind: AudioStop}) {
		t.Fatal("expected send to succeed")
	}
	if got := h.State().TrackName; got != "preset" {
		t.Errorf("got %q, want preset", got)
	}
	cmd, ok := q.Pop()
	if !ok || cmd.Kind != AudioStop {
		t.Fatalf("queue did not receive sent command: %+v, %v", cmd, ok)
	}
}
