package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		chunks := SplitText("hello", 100, 10)
		if len(chunks) != 1 || chunks[0] != "hello" {
			t.Errorf("chunks = %v", chunks)
		}
	})

	t.Run("long text is chunked with overlap", func(t *testing.T) {
		text := strings.Repeat("a", 250)
		chunks := SplitText(text, 100, 20)
		if len(chunks) != 3 {
			t.Fatalf("got %d chunks", len(chunks))
		}
		if len(chunks[0]) != 100 {
			t.Errorf("first chunk len = %d", len(chunks[0]))
		}
		// second chunk starts 80 in, so its first 20 runes repeat the
		// tail of the first chunk
		if chunks[0][80:] != chunks[1][:20] {
			t.Error("overlap not preserved between chunks")
		}
	})

	t.Run("no content is dropped", func(t *testing.T) {
		text := "abcdefghijklmnopqrstuvwxyz"
		chunks := SplitText(text, 10, 3)
		joined := chunks[0]
		for i := 1; i < len(chunks); i++ {
			joined += chunks[i][3:]
		}
		if joined != text {
			t.Errorf("reassembled = %q", joined)
		}
	})

	t.Run("overlap larger than chunk size falls back to plain stepping", func(t *testing.T) {
		text := strings.Repeat("x", 30)
		chunks := SplitText(text, 10, 15)
		if len(chunks) != 3 {
			t.Errorf("got %d chunks", len(chunks))
		}
	})

	t.Run("multibyte runes are never split", func(t *testing.T) {
		text := strings.Repeat("日本語テキスト", 40)
		for _, c := range SplitText(text, 50, 10) {
			for _, r := range c {
				if r == '�' {
					t.Fatalf("chunk %q contains a broken rune", c)
				}
			}
		}
	})
}
