package ttscache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sarthi-tvs/callagent/internal/services"
	"github.com/sarthi-tvs/callagent/internal/storage"
)

type stubSynth struct {
	calls int64
	fail  bool
	delay time.Duration
}

func (s *stubSynth) Synthesize(ctx context.Context, text string, params services.VoiceParams) ([]byte, error) {
	atomic.AddInt64(&s.calls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.fail {
		return nil, fmt.Errorf("synth unavailable")
	}
	return []byte("audio:" + text), nil
}

func newTestCache(t *testing.T, enabled bool) (*Cache, *stubSynth) {
	t.Helper()

	store, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	synth := &stubSynth{}
	return New(synth, store, enabled), synth
}

func TestSynthesizeCachesArtifact(t *testing.T) {
	cache, synth := newTestCache(t, true)
	ctx := context.Background()
	params := services.DefaultVoiceParams()

	first, err := cache.Synthesize(ctx, "Namaste!", params)
	if err != nil {
		t.Fatalf("first Synthesize failed: %v", err)
	}
	if !strings.HasPrefix(first, storage.PublicPathPrefix) {
		t.Errorf("reference %q does not start with %q", first, storage.PublicPathPrefix)
	}
	if !strings.HasSuffix(first, ".mp3") {
		t.Errorf("reference %q does not carry the mp3 extension", first)
	}

	second, err := cache.Synthesize(ctx, "Namaste!", params)
	if err != nil {
		t.Fatalf("second Synthesize failed: %v", err)
	}
	if first != second {
		t.Errorf("same request produced different references: %q vs %q", first, second)
	}
	if got := atomic.LoadInt64(&synth.calls); got != 1 {
		t.Errorf("backend called %d times, want 1", got)
	}
}

func TestSynthesizeKeyVariesWithParams(t *testing.T) {
	cache, _ := newTestCache(t, true)
	ctx := context.Background()

	hindi, err := cache.Synthesize(ctx, "Namaste!", services.DefaultVoiceParams())
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	english, err := cache.Synthesize(ctx, "Namaste!", services.VoiceFor("en-US"))
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if hindi == english {
		t.Errorf("different voice params produced the same reference %q", hindi)
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	cache, synth := newTestCache(t, true)

	if _, err := cache.Synthesize(context.Background(), "   ", services.DefaultVoiceParams()); err == nil {
		t.Fatal("expected error for empty text")
	}
	if got := atomic.LoadInt64(&synth.calls); got != 0 {
		t.Errorf("backend called %d times for empty text, want 0", got)
	}
}

func TestSynthesizeBackendFailure(t *testing.T) {
	cache, synth := newTestCache(t, true)
	synth.fail = true

	ref, err := cache.Synthesize(context.Background(), "Namaste!", services.DefaultVoiceParams())
	if err == nil {
		t.Fatal("expected error when backend fails")
	}
	if ref != "" {
		t.Errorf("got reference %q alongside error", ref)
	}
}

func TestSynthesizeDisabledSkipsLookup(t *testing.T) {
	cache, synth := newTestCache(t, false)
	ctx := context.Background()
	params := services.DefaultVoiceParams()

	if _, err := cache.Synthesize(ctx, "Namaste!", params); err != nil {
		t.Fatalf("first Synthesize failed: %v", err)
	}
	if _, err := cache.Synthesize(ctx, "Namaste!", params); err != nil {
		t.Fatalf("second Synthesize failed: %v", err)
	}

	if got := atomic.LoadInt64(&synth.calls); got != 2 {
		t.Errorf("backend called %d times with caching disabled, want 2", got)
	}
}

func TestSynthesizeCollapsesConcurrentMisses(t *testing.T) {
	cache, synth := newTestCache(t, true)
	synth.delay = 100 * time.Millisecond
	params := services.DefaultVoiceParams()

	const callers = 8
	start := make(chan struct{})
	refs := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			refs[i], errs[i] = cache.Synthesize(context.Background(), "Namaste!", params)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if refs[i] != refs[0] {
			t.Errorf("caller %d got %q, want %q", i, refs[i], refs[0])
		}
	}
	if got := atomic.LoadInt64(&synth.calls); got != 1 {
		t.Errorf("backend called %d times for concurrent misses, want 1", got)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		encoding string
		want     string
	}{
		{services.EncodingMP3, "mp3"},
		{services.EncodingLinear16, "wav"},
		{services.EncodingOggOpus, "ogg"},
		{services.EncodingMulaw, "wav"},
		{services.EncodingAlaw, "wav"},
		{"", "mp3"},
		{"SOMETHING_NEW", "mp3"},
	}

	for _, tt := range tests {
		if got := extensionFor(tt.encoding); got != tt.want {
			t.Errorf("extensionFor(%q) = %q, want %q", tt.encoding, got, tt.want)
		}
	}
}
