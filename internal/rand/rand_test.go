package rand

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.Empty(t, String(0))
	require.Empty(t, String(-1))

	id := String(12)
	require.Len(t, id, 12)
	for _, r := range id {
		require.True(t, strings.ContainsRune(charset, r), "unexpected rune %q", r)
	}
}

func TestStringConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	seen := sync.Map{}
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen.Store(String(12), struct{}{})
		}()
	}
	wg.Wait()

	n := 0
	seen.Range(func(_, _ any) bool { n++; return true })
	require.Equal(t, 32, n)
}

func BenchmarkString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = String(12)
	}
}
