package state

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plateReport struct {
	Plate string
	Note  string
}

func (r plateReport) Key() string { return r.Plate }

func report(plate string) plateReport { return plateReport{Plate: plate} }

func keys(items []plateReport) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.Plate
	}
	return out
}

func TestSearchCache_Add(t *testing.T) {
	t.Run("duplicates move to the front", func(t *testing.T) {
		c := NewSearchCache(5).Add("MH12AB1234").Add("DL01CD5678").Add("MH12AB1234")
		assert.Equal(t, []string{"MH12AB1234", "DL01CD5678"}, c.Items())
	})

	t.Run("case and whitespace are normalized", func(t *testing.T) {
		c := NewSearchCache(5).Add("dl01ab1234").Add("  DL01AB1234 ")
		assert.Equal(t, []string{"DL01AB1234"}, c.Items())
	})

	t.Run("oldest entry is evicted at the cap", func(t *testing.T) {
		c := NewSearchCache(5)
		for i := range 6 {
			c = c.Add(fmt.Sprintf("KA0%dAA1111", i))
		}
		assert.Equal(t, []string{"KA05AA1111", "KA04AA1111", "KA03AA1111", "KA02AA1111", "KA01AA1111"}, c.Items())
	})

	t.Run("blank ids are ignored", func(t *testing.T) {
		c := NewSearchCache(5).Add("MH12AB1234").Add("   ")
		assert.Equal(t, []string{"MH12AB1234"}, c.Items())
	})

	t.Run("non-positive cap uses default", func(t *testing.T) {
		assert.Equal(t, DefaultMaxRecentSearches, NewSearchCache(0).Max())
		assert.Equal(t, DefaultMaxRecentSearches, SearchCache{}.Max())
	})
}

func TestSearchCache_RandomSequencesKeepInvariants(t *testing.T) {
	pool := []string{"mh12ab1234", "MH12AB1234", "dl01cd5678", "DL01CD5678", "ka05mn0001", "tn09zz9999", "gj01aa0001", "rj14cc4321", " up32bb1111 "}
	rng := rand.New(rand.NewPCG(1, 2))

	for run := range 200 {
		c := NewSearchCache(5)
		var last string
		for range 30 {
			id := pool[rng.IntN(len(pool))]
			if rng.IntN(5) == 0 {
				c = c.Remove(id)
				continue
			}
			c = c.Add(id)
			last = strings.ToUpper(strings.TrimSpace(id))

			items := c.Items()
			require.LessOrEqual(t, len(items), 5, "run %d", run)
			require.Equal(t, last, items[0], "run %d", run)
			seen := map[string]bool{}
			for _, it := range items {
				require.False(t, seen[strings.ToUpper(it)], "duplicate %q in run %d", it, run)
				seen[strings.ToUpper(it)] = true
			}
		}
	}
}

func TestSearchCache_RemoveAndClear(t *testing.T) {
	c := NewSearchCache(5).Add("MH12AB1234").Add("DL01CD5678")

	assert.Equal(t, []string{"MH12AB1234"}, c.Remove("dl01cd5678").Items())
	assert.Equal(t, []string{"DL01CD5678", "MH12AB1234"}, c.Remove("KA01AA0001").Items())
	assert.Empty(t, c.Clear().Items())
	assert.Equal(t, 5, c.Clear().Max())
}

func TestSearchCache_ValueSemantics(t *testing.T) {
	base := NewSearchCache(5).Add("MH12AB1234").Add("DL01CD5678")
	before := base.Items()

	_ = base.Add("KA01AA0001")
	_ = base.Remove("MH12AB1234")
	items := base.Items()
	items[0] = "MUTATED"

	assert.Equal(t, before, base.Items())
}

func TestReportStore_Save(t *testing.T) {
	t.Run("same key replaces in place", func(t *testing.T) {
		s := NewReportStore[plateReport](10).
			Save(report("A")).
			Save(report("B")).
			Save(report("C"))

		s = s.Save(plateReport{Plate: "B", Note: "refreshed"})

		require.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"C", "B", "A"}, keys(s.Items()))
		got, ok := s.Get("B")
		require.True(t, ok)
		assert.Equal(t, "refreshed", got.Note)
	})

	t.Run("eleventh distinct key evicts the oldest", func(t *testing.T) {
		s := NewReportStore[plateReport](10)
		for i := 1; i <= 11; i++ {
			s = s.Save(report(fmt.Sprintf("R%d", i)))
		}
		assert.Equal(t, []string{"R11", "R10", "R9", "R8", "R7", "R6", "R5", "R4", "R3", "R2"}, keys(s.Items()))
		_, ok := s.Get("R1")
		assert.False(t, ok)
	})

	t.Run("replacing never changes length at the cap", func(t *testing.T) {
		s := NewReportStore[plateReport](3).Save(report("A")).Save(report("B")).Save(report("C"))
		s = s.Save(plateReport{Plate: "A", Note: "x"})
		assert.Equal(t, []string{"C", "B", "A"}, keys(s.Items()))
	})
}

func TestReportStore_RemoveAndClear(t *testing.T) {
	s := NewReportStore[plateReport](10).Save(report("A")).Save(report("B"))

	assert.Equal(t, []string{"A"}, keys(s.Remove("B").Items()))
	assert.Equal(t, []string{"B", "A"}, keys(s.Remove("Z").Items()))
	assert.Empty(t, s.Clear().Items())
}

func TestReportStore_ValueSemantics(t *testing.T) {
	base := NewReportStore[plateReport](10).Save(report("A")).Save(report("B"))

	_ = base.Save(plateReport{Plate: "A", Note: "changed"})
	items := base.Items()
	items[0].Note = "mutated"

	got, _ := base.Get("A")
	assert.Empty(t, got.Note)
	got, _ = base.Get("B")
	assert.Empty(t, got.Note)
}
