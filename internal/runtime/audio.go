package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AudioCmdKind tags which AudioCmd variant is populated.
type AudioCmdKind int

const (
	AudioLoadAndPlay AudioCmdKind = iota
	AudioLoadAndPlayData
	AudioPause
	AudioResume
	AudioStop
	AudioPlaySfx
	AudioShutdown
)

// AudioCmd is one command sent to the audio worker. Only the fields
// relevant to Kind are populated.
type AudioCmd struct {
	Kind AudioCmdKind

	Path string // AudioLoadAndPlay
	Data []byte // AudioLoadAndPlayData
	SfxID uint32 // AudioPlaySfx
}

// SharedAudioState is the audio worker's published snapshot, read by
// the main goroutine each frame to render a music overlay. The PSP
// original guards this with a spinlock since critical sections are a
// few field writes on a single core; here a mutex serves the same
// purpose across real OS threads.
type SharedAudioState struct {
	Playing     bool
	Paused      bool
	SampleRate  uint32
	Bitrate     uint32
	Channels    uint32
	PositionMs  uint64
	DurationMs  uint64
	TrackName   string
}

// Player is the capability the audio worker drives. A concrete backend
// (MP3 decode + output) implements this; tests substitute a fake.
type Player interface {
	LoadAndPlay(path string) bool
	LoadAndPlayData(data []byte) bool
	IsPlaying() bool
	IsPaused() bool
	TogglePause()
	Stop()
	Update() // advances playback, may block briefly on the output device
	PositionMs() uint64
	DurationMs() uint64
	SampleRate() uint32
	Bitrate() uint32
	Channels() uint32
	TrackName() string
}

// SfxEngine mixes short one-shot sound effects on their own hardware
// channel, independent of music playback.
type SfxEngine interface {
	Play(id uint32)
	Pump()
}

// AudioHandle is the main goroutine's view of the audio worker: send
// commands, read state snapshots.
type AudioHandle struct {
	queue *Queue[AudioCmd]
	state *sharedState
}

// Send enqueues cmd for the audio worker. Non-blocking; drops the
// command if the queue is momentarily full.
func (h *AudioHandle) Send(cmd AudioCmd) bool { return h.queue.Push(cmd) }

// State snapshots the current audio state under the shared lock.
func (h *AudioHandle) State() SharedAudioState { return h.state.get() }

type sharedState struct {
	mu    sync.Mutex
	state SharedAudioState
}

func (s *sharedState) get() SharedAudioState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *sharedState) set(f func(*SharedAudioState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.state)
}

// audioQueueCapacity matches the PSP original's SpscQueue<AudioCmd, 16>.
const audioQueueCapacity = 16

// idleSleep is how long a worker naps when its command queue is empty,
// matching the PSP original's 10ms idle sleep.
const idleSleep = 10 * time.Millisecond

// runAudioWorker drains cmdQueue until AudioShutdown, driving player
// and sfx and publishing state after each command and each playback
// tick. It returns when told to shut down or when ctx is canceled.
func runAudioWorker(ctx context.Context, cmdQueue *Queue[AudioCmd], state *sharedState, player Player, sfx SfxEngine, log zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			player.Stop()
			state.set(func(s *SharedAudioState) { s.Playing = false })
			return
		default:
		}

		cmd, ok := cmdQueue.Pop()
		if ok {
			if handleAudioCmd(cmd, player, sfx, state, log) {
				return
			}
		}

		if player.IsPlaying() && !player.IsPaused() {
			player.Update()
			state.set(func(s *SharedAudioState) {
				s.PositionMs = player.PositionMs()
				s.DurationMs = player.DurationMs()
			})
			if !player.IsPlaying() {
				state.set(func(s *SharedAudioState) { s.Playing = false })
			}
		} else if !ok {
			time.Sleep(idleSleep)
		}

		if sfx != nil {
			sfx.Pump()
		}
	}
}

// handleAudioCmd applies one command, returning true when the worker
// should terminate (AudioShutdown).
func handleAudioCmd(cmd AudioCmd, player Player, sfx SfxEngine, state *sharedState, log zerolog.Logger) bool {
	switch cmd.Kind {
	case AudioLoadAndPlay:
		if player.LoadAndPlay(cmd.Path) {
			publishPlaying(state, player)
		} else {
			log.Warn().Str("path", cmd.Path).Msg("audio: load and play failed")
			state.set(func(s *SharedAudioState) { s.Playing = false })
		}
	case AudioLoadAndPlayData:
		if player.LoadAndPlayData(cmd.Data) {
			publishPlaying(state, player)
		} else {
			log.Warn().Msg("audio: load and play (in-memory) failed")
			state.set(func(s *SharedAudioState) { s.Playing = false })
		}
	case AudioPause:
		if player.IsPlaying() && !player.IsPaused() {
			player.TogglePause()
			state.set(func(s *SharedAudioState) { s.Paused = true })
		}
	case AudioResume:
		if player.IsPlaying() && player.IsPaused() {
			player.TogglePause()
			state.set(func(s *SharedAudioState) { s.Paused = false })
		}
	case AudioStop:
		player.Stop()
		state.set(func(s *SharedAudioState) { s.Playing, s.Paused = false, false })
	case AudioPlaySfx:
		if sfx != nil {
			sfx.Play(cmd.SfxID)
		}
	case AudioShutdown:
		player.Stop()
		state.set(func(s *SharedAudioState) { s.Playing = false })
		return true
	}
	return false
}

func publishPlaying(state *sharedState, player Player) {
	state.set(func(s *SharedAudioState) {
		s.Playing = true
		s.Paused = false
		s.SampleRate = player.SampleRate()
		s.Bitrate = player.Bitrate()
		s.Channels = player.Channels()
		s.PositionMs = 0
		s.DurationMs = 0
		s.TrackName = player.TrackName()
	})
}
