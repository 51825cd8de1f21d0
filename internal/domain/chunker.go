package domain

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	chunkEncoding = "cl100k_base"

	// chunkTokenLimit bounds one full-content export file.
	chunkTokenLimit = 100000

	// fallbackChunkBytes bounds one chunk when no encoder is available
	// and splitting degrades to line-based byte counting.
	fallbackChunkBytes = 4000
)

// tokenEncoder is the subset of tiktoken the chunker relies on.
type tokenEncoder interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

// Chunker splits concatenated file contents into token-bounded pieces for
// the full-content export and estimates token counts for report metrics.
// The encoder loads lazily and at most once; when it cannot load (the
// encoding data may need a network fetch on first use), every operation
// degrades to byte-based approximations instead of failing.
type Chunker struct {
	once      sync.Once
	encoderFn func() (tokenEncoder, error)
	encoder   tokenEncoder
}

// NewChunker creates a Chunker backed by the cl100k_base encoding.
func NewChunker() *Chunker {
	return &Chunker{
		encoderFn: func() (tokenEncoder, error) {
			return tiktoken.GetEncoding(chunkEncoding)
		},
	}
}

func (c *Chunker) load() tokenEncoder {
	c.once.Do(func() {
		enc, err := c.encoderFn()
		if err != nil {
			return
		}

		c.encoder = enc
	})

	return c.encoder
}

// CountTokens returns the token count of content, or a bytes/4 estimate
// when the encoder is unavailable.
func (c *Chunker) CountTokens(content string) int {
	enc := c.load()
	if enc == nil {
		return (len(content) + 3) / 4
	}

	return len(enc.Encode(content, nil, nil))
}

// Split divides content into chunks of at most chunkTokenLimit tokens.
// Without an encoder it falls back to line-based chunks capped at
// fallbackChunkBytes each, so oversized lines stay intact.
func (c *Chunker) Split(content string) []string {
	if content == "" {
		return nil
	}

	enc := c.load()
	if enc == nil {
		return splitByLines(content)
	}

	tokens := enc.Encode(content, nil, nil)
	if len(tokens) <= chunkTokenLimit {
		return []string{content}
	}

	chunks := make([]string, 0, len(tokens)/chunkTokenLimit+1)

	for start := 0; start < len(tokens); start += chunkTokenLimit {
		end := min(start+chunkTokenLimit, len(tokens))
		chunks = append(chunks, enc.Decode(tokens[start:end]))
	}

	return chunks
}

func splitByLines(content string) []string {
	var (
		chunks  []string
		current strings.Builder
	)

	for _, line := range strings.SplitAfter(content, "\n") {
		if current.Len() > 0 && current.Len()+len(line) > fallbackChunkBytes {
			chunks = append(chunks, current.String())
			current.Reset()
		}

		current.WriteString(line)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
