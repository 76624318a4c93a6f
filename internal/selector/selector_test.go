package selector

import (
	"math/rand/v2"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_KnownValues(t *testing.T) {
	assert.Equal(t, int32(0), Hash(""))
	assert.Equal(t, int32(97), Hash("a"))
	assert.Equal(t, int32(99162322), Hash("hello"))
	assert.Equal(t, int32(-2147483648), Hash("polygenelubricants"))
	// Astral runes hash as their UTF-16 surrogate pair.
	assert.Equal(t, int32(-1467611895), Hash("🐸 frog"))
}

func TestSelectIndex_Regression(t *testing.T) {
	assert.Equal(t, 2, SelectIndex("hello", 10))
	assert.Equal(t, 5, SelectIndex("will it rain tomorrow?", 10))
	assert.Equal(t, 6, SelectIndex("a", 7))
}

func TestSelectIndex_NormalizesPhrase(t *testing.T) {
	assert.Equal(t, SelectIndex("hello", 10), SelectIndex("  HeLLo \n", 10))
}

func TestNormalize_MatchesECMAScript(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  HeLLo \n", "hello"},
		{"\uFEFFhello\u3000", "hello"},
		{"\u0085hello", "\u0085hello"},
		{"İ", "i\u0307"},
		{"ΟΔΟΣ", "οδος"},
		{"ΟΔΟΣ ΣΑ", "οδος σα"},
		{"Σ", "σ"},
		{"ΟΔΟΣ.", "οδος."},
		{"🐸 Frog", "🐸 frog"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestSelectIndex_SpecialCasing(t *testing.T) {
	assert.Equal(t, 4030, SelectIndex("İ", 100000))
	assert.Equal(t, 2, SelectIndex("\uFEFFhello", 10))
	assert.Equal(t, 8, SelectIndex("ΟΔΟΣ", 10))
	assert.Equal(t, 5, SelectIndex("🐸 frog", 10))
}

func TestSelectIndex_MinInt32NeverNegative(t *testing.T) {
	// abs(-2^31) = 2147483648
	assert.Equal(t, 8, SelectIndex("polygenelubricants", 10))
	assert.Equal(t, 2, SelectIndex("polygenelubricants", 7))
}

func TestSelectIndex_DeterministicAndInRange(t *testing.T) {
	phrases := []string{"", "x", "will I be rich", "🐸 frog", "Rabscootle", "polygenelubricants"}
	for _, n := range []int{1, 2, 3, 10, 97, 1000} {
		for _, p := range phrases {
			first := SelectIndex(p, n)
			assert.Equal(t, first, SelectIndex(p, n))
			assert.GreaterOrEqual(t, first, 0)
			assert.Less(t, first, n)
		}
	}
}

func TestSelectIndex_EmptyPool(t *testing.T) {
	assert.Equal(t, 0, SelectIndex("hello", 0))
	assert.Equal(t, 0, SelectIndex("hello", -3))
}

func TestShuffle_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	Shuffle(items, rng)
	sorted := append([]int(nil), items...)
	sort.Ints(sorted)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)
}

func TestPreview_DoesNotMutateSource(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	src := []string{"a", "b", "c", "d", "e"}
	got := Preview(src, 3, rng)
	assert.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, src)
	for _, v := range got {
		assert.Contains(t, src, v)
	}
	assert.Len(t, Preview(src, 25, rng), 5)
}

func TestPicker_CycleIsPermutation(t *testing.T) {
	src := []string{"a", "b", "c", "d", "e", "f", "g"}
	p := NewPicker(src, rand.New(rand.NewPCG(42, 7)))

	for cycle := 0; cycle < 3; cycle++ {
		seen := make(map[string]int)
		for i := 0; i < len(src); i++ {
			v, ok := p.Next()
			require.True(t, ok)
			seen[v]++
		}
		require.Len(t, seen, len(src), "cycle %d", cycle)
		for _, s := range src {
			assert.Equal(t, 1, seen[s], "cycle %d: %q", cycle, s)
		}
		assert.Equal(t, 0, p.Remaining())
	}
}

func TestPicker_SourceIsCopied(t *testing.T) {
	src := []int{1, 2, 3}
	p := NewPicker(src, nil)
	src[0] = 99
	for i := 0; i < 3; i++ {
		v, ok := p.Next()
		require.True(t, ok)
		assert.NotEqual(t, 99, v)
	}
}

func TestPicker_EmptySource(t *testing.T) {
	p := NewPicker[string](nil, nil)
	v, ok := p.Next()
	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, 0, p.Len())
}

func TestPicker_ConcurrentCycle(t *testing.T) {
	src := make([]int, 200)
	for i := range src {
		src[i] = i
	}
	p := NewPicker(src, nil)

	var mu sync.Mutex
	seen := make(map[int]int)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				v, _ := p.Next()
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, len(src))
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}
