package chunker

// FixedChunker splits strings into consecutive pieces of at most size runes.
type FixedChunker struct {
	size int
}

func NewFixedChunker(size int) *FixedChunker {
	if size <= 0 {
		size = 200
	}
	return &FixedChunker{size: size}
}

// Size returns the maximum chunk length in runes.
func (c *FixedChunker) Size() int { return c.size }

// Chunk splits text without regard to word boundaries. Concatenating the
// result yields the input again.
func (c *FixedChunker) Chunk(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(runes)+c.size-1)/c.size)
	for i := 0; i < len(runes); i += c.size {
		end := i + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
