package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storyforge-hq/warden/pkg/audit"
	"storyforge-hq/warden/pkg/audit/storage"
	"storyforge-hq/warden/pkg/config"
)

func testEmitterConfig() config.EmitterConfig {
	return config.EmitterConfig{
		Buffer:       64,
		WriteTimeout: time.Second,
	}
}

func TestEmitter_WritesEvents(t *testing.T) {
	store := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	em := audit.NewEmitter(store, testEmitterConfig())

	em.Emit(audit.NewEvent("session-1", "prompt_injection", []string{"injection.001"}))
	em.Emit(audit.NewEvent("session-1", "inappropriate_content", nil))

	if err := em.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("stored %d events, want 2", n)
	}
}

func TestEmitter_CloseDrainsQueue(t *testing.T) {
	store := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 1000})
	em := audit.NewEmitter(store, config.EmitterConfig{
		Buffer:       500,
		WriteTimeout: time.Second,
	})

	const total = 200
	for i := 0; i < total; i++ {
		em.Emit(audit.NewEvent("session-1", "prompt_injection", nil))
	}
	em.Close()

	n, _ := store.Count(context.Background())
	if n != total {
		t.Errorf("stored %d events after Close, want %d", n, total)
	}
}

func TestEmitter_EmitAfterCloseDrops(t *testing.T) {
	store := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	em := audit.NewEmitter(store, testEmitterConfig())
	em.Close()

	em.Emit(audit.NewEvent("session-1", "prompt_injection", nil))

	if em.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", em.Dropped())
	}
	n, _ := store.Count(context.Background())
	if n != 0 {
		t.Errorf("stored %d events after Close, want 0", n)
	}
}

// blockingStorage blocks every Store call until released, to force the
// emitter buffer to fill up.
type blockingStorage struct {
	release chan struct{}
	once    sync.Once
}

func (b *blockingStorage) Store(ctx context.Context, _ *audit.SecurityEvent) error {
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return nil
}

func (b *blockingStorage) Query(context.Context, audit.Query) ([]*audit.SecurityEvent, error) {
	return nil, nil
}

func (b *blockingStorage) Count(context.Context) (int64, error) { return 0, nil }

func (b *blockingStorage) DeleteBefore(context.Context, time.Time) (int64, error) {
	return 0, errors.New("not implemented")
}

func (b *blockingStorage) Trim(context.Context, int64) (int64, error) {
	return 0, errors.New("not implemented")
}

func (b *blockingStorage) Close() error {
	b.once.Do(func() { close(b.release) })
	return nil
}

func TestEmitter_FullBufferDropsWithoutBlocking(t *testing.T) {
	store := &blockingStorage{release: make(chan struct{})}
	em := audit.NewEmitter(store, config.EmitterConfig{
		Buffer:       2,
		WriteTimeout: time.Second,
	})
	defer em.Close()
	defer store.Close()

	done := make(chan struct{})
	go func() {
		// Buffer of 2 plus one event in flight; the rest must drop.
		for i := 0; i < 10; i++ {
			em.Emit(audit.NewEvent("session-1", "prompt_injection", nil))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full buffer")
	}

	if em.Dropped() == 0 {
		t.Error("expected dropped events with a full buffer")
	}
}
