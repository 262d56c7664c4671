package runtime

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/oasis-os/oasis/internal/vfs"
)

func TestStartAndShutdownCompletesWithoutPlayer(t *testing.T) {
	fs := &fakeFS{files: map[string][]byte{"/a.txt": []byte("hi")}}
	rt, audio, ioHandle := Start(fs, nil, nil, zerolog.Nop())

	if !audio.Send(AudioCmd{Kind: AudioLoadAndPlay, Path: "song.mp3"}) {
		t.Fatal("expected audio command accepted")
	}
	if !ioHandle.Send(IoCmd{Kind: IoReadFile, ID: 1, Path: "/a.txt"}) {
		t.Fatal("expected io command accepted")
	}

	var resp IoResponse
	var ok bool
	for i := 0; i < 50; i++ {
		resp, ok = ioHandle.TryRecv()
		if ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !ok || resp.Kind != IoFileReady || string(resp.Data) != "hi" {
		t.Fatalf("got (%+v, %v)", resp, ok)
	}

	done := make(chan error, 1)
	go func() { done <- rt.Shutdown() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("shutdown returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete in time")
	}
}

func TestStartWithNilPlayerAcceptsAudioCommandsSilently(t *testing.T) {
	fs := &fakeFS{files: map[string][]byte{}}
	rt, audio, _ := Start(fs, nil, nil, zerolog.Nop())
	defer rt.Shutdown()

	if !audio.Send(AudioCmd{Kind: AudioPause}) {
		t.Fatal("expected AudioPause accepted even with no player")
	}
	var vfsIface vfs.VFS = fs
	_ = vfsIface
}
