package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://saunaspa.io"

func spaceURLs(s *Space) []string {
	out := make([]string, 0, s.Len())
	s.ForEach(func(u string) bool {
		out = append(out, u)
		return true
	})
	return out
}

func TestStandardSpaceDeterminism(t *testing.T) {
	cities := []string{"madrid", "barcelona", "valencia"}

	a := spaceURLs(StandardSpace(testBase, "es", cities))
	b := spaceURLs(StandardSpace(testBase, "es", cities))
	assert.Equal(t, a, b, "same inputs must enumerate identically")
}

func TestStandardSpaceContents(t *testing.T) {
	cities := []string{"madrid", "barcelona", "valencia"}
	urls := spaceURLs(StandardSpace(testBase, "es", cities))

	t.Run("pure category pages come first", func(t *testing.T) {
		require.Greater(t, len(urls), len(Categories))
		assert.Equal(t, testBase+"/es/saunas-finlandesas", urls[0])
	})

	t.Run("category city combinations present", func(t *testing.T) {
		assert.Contains(t, urls, testBase+"/es/saunas-finlandesas-madrid")
		assert.Contains(t, urls, testBase+"/es/jacuzzis-exterior-barcelona")
	})

	t.Run("intent category combinations present", func(t *testing.T) {
		assert.Contains(t, urls, testBase+"/es/comprar-saunas-finlandesas")
		assert.Contains(t, urls, testBase+"/es/mejores-jacuzzis-exterior")
	})

	t.Run("modifier combinations cover top categories only", func(t *testing.T) {
		assert.Contains(t, urls, testBase+"/es/saunas-finlandesas-premium")
		assert.NotContains(t, urls, testBase+"/es/accesorios-spa-premium")
	})

	t.Run("no duplicates", func(t *testing.T) {
		seen := make(map[string]struct{}, len(urls))
		for _, u := range urls {
			_, dup := seen[u]
			assert.False(t, dup, "duplicate url %s", u)
			seen[u] = struct{}{}
		}
	})

	t.Run("every url sits under the locale prefix", func(t *testing.T) {
		for _, u := range urls {
			assert.True(t, strings.HasPrefix(u, testBase+"/es/"), "url %s", u)
		}
	})
}

func TestStandardSpaceSizeFormula(t *testing.T) {
	cities := []string{"madrid", "barcelona"}
	space := StandardSpace(testBase, "es", cities)

	cats := len(Categories)
	want := cats + // pure categories
		len(standardIntents)*cats + // intent+category
		len(cities)*cats + // category+city
		len(cities)*len(highValueIntents)*topCategoryCount + // triple, cities under limit
		len(Modifiers["es"])*topCategoryCount // category+modifier
	assert.Equal(t, want, space.Len())
}

func TestMassiveSpacePagination(t *testing.T) {
	cities := make([]string, 600)
	for i := range cities {
		cities[i] = "city-" + string(rune('a'+i%26)) + "-" + strings.Repeat("x", i/26+1)
	}
	space := MassiveSpace(testBase, "de", cities)
	total := space.Len()
	require.Greater(t, total, URLsPerPart, "need at least two parts for the test")

	t.Run("windows concatenate to the full space", func(t *testing.T) {
		full := spaceURLs(space)

		var paged []string
		for start := 0; start < total; start += URLsPerPart {
			part := space.Slice(start, URLsPerPart)
			require.NotEmpty(t, part)
			paged = append(paged, part...)
		}
		assert.Equal(t, full, paged)
	})

	t.Run("window past the end is empty", func(t *testing.T) {
		lastPart := (total + URLsPerPart - 1) / URLsPerPart
		assert.Empty(t, space.Slice(lastPart*URLsPerPart, URLsPerPart))
	})

	t.Run("random access agrees with enumeration order", func(t *testing.T) {
		full := spaceURLs(space)
		for _, i := range []int{0, 1, URLsPerPart - 1, URLsPerPart, total - 1} {
			u, ok := space.URL(i)
			require.True(t, ok, "index %d", i)
			assert.Equal(t, full[i], u, "index %d", i)
		}
		_, ok := space.URL(total)
		assert.False(t, ok)
	})
}

func TestEmptyCityListStillYieldsCategoryPages(t *testing.T) {
	space := StandardSpace(testBase, "fr", nil)
	urls := spaceURLs(space)

	assert.NotEmpty(t, urls)
	assert.Contains(t, urls, testBase+"/fr/saunas-finlandais")
	for _, u := range urls {
		assert.NotContains(t, u, "--", "no empty city joints in %s", u)
	}
}

func TestCategorySlugsFallBackToDefaultLocale(t *testing.T) {
	got := CategorySlugs("el")
	assert.Len(t, got, len(Categories))
	assert.Equal(t, "finlandikes-saounes", got[0])
}
