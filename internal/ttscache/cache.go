// Package ttscache fronts a speech synthesizer with a content-addressed
// artifact cache. Identical requests (same text, same voice parameters)
// hash to the same filename, so repeated prompts are synthesized once and
// replayed from storage on every later call.
package ttscache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/sarthi-tvs/callagent/internal/models"
	"github.com/sarthi-tvs/callagent/internal/services"
	"github.com/sarthi-tvs/callagent/internal/storage"
)

type Cache struct {
	synth   services.Synthesizer
	store   storage.Store
	enabled bool
	group   singleflight.Group
}

// New wraps a synthesizer with artifact caching. When enabled is false the
// cache lookup is skipped, but artifacts are still written to the store:
// callers need a playable URL either way.
func New(synth services.Synthesizer, store storage.Store, enabled bool) *Cache {
	return &Cache{
		synth:   synth,
		store:   store,
		enabled: enabled,
	}
}

// Synthesize returns the public reference of an audio artifact speaking the
// given text, synthesizing and storing it on a cache miss. Concurrent misses
// for the same artifact are collapsed into a single backend call.
func (c *Cache) Synthesize(ctx context.Context, text string, params services.VoiceParams) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text provided for synthesis")
	}

	filename := filenameFor(text, params)

	if c.enabled {
		if ref, ok := c.store.Exists(ctx, filename); ok {
			log.Printf("[Cache] hit: %s", filename)
			return ref, nil
		}
	}

	ref, err, shared := c.group.Do(filename, func() (interface{}, error) {
		// A concurrent caller may have stored the artifact while this one
		// waited its turn.
		if c.enabled {
			if ref, ok := c.store.Exists(ctx, filename); ok {
				return ref, nil
			}
		}

		audio, err := c.synth.Synthesize(ctx, text, params)
		if err != nil {
			return nil, fmt.Errorf("synthesis failed: %w", err)
		}

		ref, err := c.store.Put(ctx, filename, audio)
		if err != nil {
			return nil, fmt.Errorf("failed to store audio: %w", err)
		}

		log.Printf("[Cache] stored %s (%d bytes)", filename, len(audio))
		return ref, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		log.Printf("[Cache] deduplicated concurrent request for %s", filename)
	}

	return ref.(string), nil
}

// Clear removes every cached artifact.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	return c.store.Clear(ctx)
}

// Info describes the cache contents.
func (c *Cache) Info(ctx context.Context) (models.CacheInfo, error) {
	return c.store.Info(ctx)
}

// filenameFor derives the artifact name from the full synthesis request.
// Every voice parameter participates in the hash, so changing the language,
// rate, or encoding of the same text yields a distinct artifact.
func filenameFor(text string, params services.VoiceParams) string {
	parts := []string{
		text,
		params.VoiceName,
		params.LanguageCode,
		params.Gender,
		params.Encoding,
		strconv.FormatFloat(params.SpeakingRate, 'g', -1, 64),
		strconv.FormatFloat(params.Pitch, 'g', -1, 64),
		strconv.FormatFloat(params.VolumeGainDb, 'g', -1, 64),
		strconv.FormatBool(params.UseSSML),
	}
	sum := md5.Sum([]byte(strings.Join(parts, "_")))
	return "speech_" + hex.EncodeToString(sum[:]) + "." + extensionFor(params.Encoding)
}

func extensionFor(encoding string) string {
	switch encoding {
	case services.EncodingMP3:
		return "mp3"
	case services.EncodingLinear16:
		return "wav"
	case services.EncodingOggOpus:
		return "ogg"
	case services.EncodingMulaw, services.EncodingAlaw:
		return "wav"
	default:
		return "mp3"
	}
}
