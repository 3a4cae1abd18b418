package manager

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTranscriptionsAgainstOneInstanceAreSerialized(t *testing.T) {
	sess := &fakeSession{segments: defaultSegments(), delay: 20 * time.Millisecond}
	adapter := &fakeAdapter{session: sess}
	m := newTestManager(t, adapter, nil)

	const callers = 4
	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Transcribe(context.Background(), TranscribeRequest{Filename: "a.wav", Audio: []byte("x")}); err != nil {
				t.Errorf("transcribe: %v", err)
			}
		}()
	}
	wg.Wait()
	// With a 20ms engine and single in-flight admission, 4 requests cannot
	// complete faster than ~80ms.
	if elapsed := time.Since(start); elapsed < 4*20*time.Millisecond {
		t.Fatalf("elapsed=%s, requests were not serialized", elapsed)
	}
}

func TestBeginTranscriptionQueueOverflowIsTooBusy(t *testing.T) {
	adapter := &fakeAdapter{session: &fakeSession{segments: defaultSegments()}}
	m := newTestManager(t, adapter, func(cfg *ManagerConfig) {
		cfg.MaxQueueDepth = 1
		cfg.MaxWait = 30 * time.Millisecond
	})
	inst, err := m.ensureInstance(context.Background(), "base")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	// A successful admission holds both the in-flight slot and its queue
	// slot until release, so the single-slot queue is already full here.
	release, err := m.beginTranscription(context.Background(), inst)
	if err != nil {
		t.Fatalf("first admission: %v", err)
	}
	defer release()

	_, err = m.beginTranscription(context.Background(), inst)
	if !IsTooBusy(err) {
		t.Fatalf("err=%v, want too busy", err)
	}
}

func TestBeginTranscriptionHonorsContextCancel(t *testing.T) {
	adapter := &fakeAdapter{session: &fakeSession{segments: defaultSegments()}}
	m := newTestManager(t, adapter, func(cfg *ManagerConfig) {
		cfg.MaxQueueDepth = 1
		cfg.MaxWait = time.Minute
	})
	inst, err := m.ensureInstance(context.Background(), "base")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	release, err := m.beginTranscription(context.Background(), inst)
	if err != nil {
		t.Fatalf("admission: %v", err)
	}
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if _, err := m.beginTranscription(ctx, inst); err != context.Canceled {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}
