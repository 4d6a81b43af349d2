package internal

import (
	"crypto/sha256"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TranscriptCache memoizes fetched transcripts by (video, language)
type TranscriptCache interface {
	Get(videoID string, lang Language) (string, bool)
	Add(videoID string, lang Language, transcript string)
	Len() int
}

// GenerationCache memoizes generation results
type GenerationCache interface {
	Get(key GenerationKey) (string, bool)
	Add(key GenerationKey, result string)
}

// GenerationKey identifies a generation request. The transcript is stored as a
// digest so long transcripts are not kept twice.
type GenerationKey struct {
	Digest   [sha256.Size]byte
	Material MaterialType
	Language Language
}

func NewGenerationKey(transcript string, material MaterialType, lang Language) GenerationKey {
	return GenerationKey{
		Digest:   sha256.Sum256([]byte(transcript)),
		Material: material,
		Language: lang,
	}
}

type transcriptKey struct {
	videoID string
	lang    Language
}

// LRUTranscriptCache is a count-bounded LRU
type LRUTranscriptCache struct {
	entries *lru.Cache[transcriptKey, string]
}

// NewTranscriptCache returns an LRU holding up to size transcripts. A size
// below one disables caching.
func NewTranscriptCache(size int) (TranscriptCache, error) {
	if size < 1 {
		return NopTranscriptCache{}, nil
	}
	entries, err := lru.New[transcriptKey, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating transcript cache: %w", err)
	}
	return &LRUTranscriptCache{entries: entries}, nil
}

func (c *LRUTranscriptCache) Get(videoID string, lang Language) (string, bool) {
	return c.entries.Get(transcriptKey{videoID: videoID, lang: lang})
}

func (c *LRUTranscriptCache) Add(videoID string, lang Language, transcript string) {
	c.entries.Add(transcriptKey{videoID: videoID, lang: lang}, transcript)
}

// Len reports the number of cached transcripts
func (c *LRUTranscriptCache) Len() int {
	return c.entries.Len()
}

// TTLGenerationCache is count-bounded and drops entries after a fixed TTL
type TTLGenerationCache struct {
	entries *expirable.LRU[GenerationKey, string]
}

// NewGenerationCache returns a cache of up to size results that expire after
// ttl. A size or ttl below one disables caching.
func NewGenerationCache(size int, ttl time.Duration) GenerationCache {
	if size < 1 || ttl <= 0 {
		return NopGenerationCache{}
	}
	return &TTLGenerationCache{entries: expirable.NewLRU[GenerationKey, string](size, nil, ttl)}
}

func (c *TTLGenerationCache) Get(key GenerationKey) (string, bool) {
	return c.entries.Get(key)
}

func (c *TTLGenerationCache) Add(key GenerationKey, result string) {
	c.entries.Add(key, result)
}

// NopTranscriptCache never stores anything
type NopTranscriptCache struct{}

func (NopTranscriptCache) Get(string, Language) (string, bool) { return "", false }
func (NopTranscriptCache) Add(string, Language, string)        {}
func (NopTranscriptCache) Len() int                            { return 0 }

// NopGenerationCache never stores anything
type NopGenerationCache struct{}

func (NopGenerationCache) Get(GenerationKey) (string, bool) { return "", false }
func (NopGenerationCache) Add(GenerationKey, string)        {}
