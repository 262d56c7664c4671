package runtime

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rs/zerolog"

	"github.com/oasis-os/oasis/internal/vfs"
)

// Runtime owns the audio and I/O worker goroutines and the queues
// connecting them to the main/UI goroutine. On the embedded target
// these three run cooperatively on one core; here they are real
// goroutines, started and stopped together.
type Runtime struct {
	cancel context.CancelFunc
	group  *errgroup.Group

	audioQueue *Queue[AudioCmd]
	audioState *sharedState

	ioCmdQueue  *Queue[IoCmd]
	ioRespQueue *Queue[IoResponse]
}

// Start spawns the audio and I/O workers and returns the Runtime handle
// along with the handles the main goroutine uses to talk to them.
// player/sfx may be nil, in which case audio commands are accepted but
// produce no sound (useful for headless hosts and tests).
func Start(fs vfs.VFS, player Player, sfx SfxEngine, log zerolog.Logger) (*Runtime, *AudioHandle, *IoHandle) {
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	r := &Runtime{
		cancel:      cancel,
		group:       group,
		audioQueue:  NewQueue[AudioCmd](audioQueueCapacity),
		audioState:  &sharedState{},
		ioCmdQueue:  NewQueue[IoCmd](ioQueueCapacity),
		ioRespQueue: NewQueue[IoResponse](responseQueueCapacity),
	}

	if player == nil {
		player = noopPlayer{}
	}

	group.Go(func() error {
		runAudioWorker(gctx, r.audioQueue, r.audioState, player, sfx, log.With().Str("worker", "audio").Logger())
		return nil
	})
	group.Go(func() error {
		runIoWorker(gctx, r.ioCmdQueue, r.ioRespQueue, fs, newHttpClient())
		return nil
	})

	audioHandle := &AudioHandle{queue: r.audioQueue, state: r.audioState}
	ioHandle := &IoHandle{cmdQueue: r.ioCmdQueue, respQueue: r.ioRespQueue}
	return r, audioHandle, ioHandle
}

// Shutdown asks both workers to finish their current command and exit,
// then waits for them. Safe to call once; a second call is a no-op
// beyond re-waiting on an already-stopped group.
func (r *Runtime) Shutdown() error {
	r.audioQueue.Push(AudioCmd{Kind: AudioShutdown})
	r.ioCmdQueue.Push(IoCmd{Kind: IoShutdown})
	r.cancel()
	return r.group.Wait()
}

// noopPlayer is the audio backend used when the host has no sound
// device wired up; every command succeeds as a silent no-op.
type noopPlayer struct{}

func (noopPlayer) LoadAndPlay(string) bool     { return true }
func (noopPlayer) LoadAndPlayData([]byte) bool { return true }
func (noopPlayer) IsPlaying() bool             { return false }
func (noopPlayer) IsPaused() bool              { return false }
func (noopPlayer) TogglePause()                {}
func (noopPlayer) Stop()                       {}
func (noopPlayer) Update()                     {}
func (noopPlayer) PositionMs() uint64          { return 0 }
func (noopPlayer) DurationMs() uint64          { return 0 }
func (noopPlayer) SampleRate() uint32          { return 0 }
func (noopPlayer) Bitrate() uint32             { return 0 }
func (noopPlayer) Channels() uint32            { return 0 }
func (noopPlayer) TrackName() string           { return "" }
