package ipc_test

import (
	"context"
	"path/filepath"
	"testing"

	"reclip/internal/daemon"
	"reclip/internal/ipc"
	"reclip/internal/pipeline"
	"reclip/internal/scheduler"
	"reclip/internal/services/youtube"
	"reclip/internal/testsupport"
)

type stubProcessor struct{}

func (stubProcessor) Process(_ context.Context, video youtube.Video) pipeline.Result {
	return pipeline.Result{VideoID: video.ID, Outcome: pipeline.OutcomeSkipped}
}

type stubLister struct{}

func (stubLister) ListVideos(context.Context, string, int, int) ([]youtube.Video, error) {
	return nil, nil
}

func startServer(t *testing.T) (*ipc.Client, *daemon.Daemon) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	store := testsupport.MustOpenLedger(t, cfg)
	coordinator := scheduler.NewCoordinator(cfg, store, stubProcessor{}, stubLister{}, nil, nil, nil)
	d, err := daemon.New(cfg, store, coordinator, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(d.Stop)

	socket := filepath.Join(t.TempDir(), "reclip.sock")
	server, err := ipc.NewServer(context.Background(), socket, d, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client, d
}

func TestStatusRoundTrip(t *testing.T) {
	client, _ := startServer(t)

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Running {
		t.Fatal("daemon reported running before Start")
	}
	if status.Windows != "10:00,18:00" {
		t.Fatalf("windows = %q", status.Windows)
	}
	if status.PID <= 0 {
		t.Fatalf("pid = %d", status.PID)
	}
}

func TestPauseResume(t *testing.T) {
	client, d := startServer(t)

	resp, err := client.Pause()
	if err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if !resp.Paused || !d.Paused() {
		t.Fatal("pause not applied")
	}

	resumed, err := client.Resume()
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resumed.Paused || d.Paused() {
		t.Fatal("resume not applied")
	}
}

func TestStopViaIPC(t *testing.T) {
	client, d := startServer(t)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if !resp.Stopped {
		t.Fatal("stop not acknowledged")
	}
	if d.Running() {
		t.Fatal("daemon still running after IPC stop")
	}
}

func TestTestNotificationUnconfigured(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.TestNotification()
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if resp.Sent {
		t.Fatal("notification sent without a configured topic")
	}
}

func TestLogTail(t *testing.T) {
	client, d := startServer(t)

	testsupport.WriteFileString(t, d.LogPath(), "first line\nsecond line\n")

	resp, err := client.LogTail(ipc.LogTailRequest{Offset: -1, Limit: 10})
	if err != nil {
		t.Fatalf("LogTail: %v", err)
	}
	if len(resp.Lines) != 2 || resp.Lines[0] != "first line" {
		t.Fatalf("lines = %v", resp.Lines)
	}
	if resp.Offset == 0 {
		t.Fatalf("offset = %d", resp.Offset)
	}
}
