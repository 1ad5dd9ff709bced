package seo

import "saunahub/internal/locale"

// The URL space is a fixed-order sequence of segments. Each segment knows
// its size and can compute any member URL arithmetically, so a sitemap part
// deep inside a multi-hundred-thousand-URL space is addressed without
// materializing the whole list.

type Segment interface {
	Len() int
	URL(i int) string
}

// crossSegment enumerates the cross product of its dimensions in mixed-radix
// order: the first dimension varies slowest, the last fastest.
type crossSegment struct {
	dims   [][]string
	render func(parts []string) string
}

func (s crossSegment) Len() int {
	n := 1
	for _, d := range s.dims {
		if len(d) == 0 {
			return 0
		}
		n *= len(d)
	}
	return n
}

func (s crossSegment) URL(i int) string {
	parts := make([]string, len(s.dims))
	for k := len(s.dims) - 1; k >= 0; k-- {
		d := s.dims[k]
		parts[k] = d[i%len(d)]
		i /= len(d)
	}
	return s.render(parts)
}

// Space is an ordered, deterministic URL sequence.
type Space struct {
	segments []Segment
}

func (s *Space) Len() int {
	n := 0
	for _, seg := range s.segments {
		n += seg.Len()
	}
	return n
}

// URL returns the i-th URL of the space, or false when out of range.
func (s *Space) URL(i int) (string, bool) {
	if i < 0 {
		return "", false
	}
	for _, seg := range s.segments {
		n := seg.Len()
		if i < n {
			return seg.URL(i), true
		}
		i -= n
	}
	return "", false
}

// Slice returns up to n URLs starting at offset, clamped at the end of the
// space. The result is empty when start is past the end.
func (s *Space) Slice(start, n int) []string {
	if start < 0 || n <= 0 {
		return nil
	}
	total := s.Len()
	if start >= total {
		return nil
	}
	end := start + n
	if end > total {
		end = total
	}

	out := make([]string, 0, end-start)
	i := start
	for _, seg := range s.segments {
		segLen := seg.Len()
		if i >= segLen {
			i -= segLen
			continue
		}
		for ; i < segLen && len(out) < end-start; i++ {
			out = append(out, seg.URL(i))
		}
		i = 0
		if len(out) == end-start {
			break
		}
	}
	return out
}

// ForEach walks the whole space in order; fn returning false stops the walk.
func (s *Space) ForEach(fn func(url string) bool) {
	for _, seg := range s.segments {
		n := seg.Len()
		for i := 0; i < n; i++ {
			if !fn(seg.URL(i)) {
				return
			}
		}
	}
}

func single(s string) []string { return []string{s} }

func topOf(ss []string, n int) []string {
	if len(ss) <= n {
		return ss
	}
	return ss[:n]
}

const (
	// URLsPerPart is the pagination window of massive sitemap parts.
	URLsPerPart = 5000
	// PartsPerLocale is how many massive parts the sitemap index advertises.
	PartsPerLocale = 10

	// StandardCityLimit caps cities per country in standard sitemaps.
	StandardCityLimit = 500
	massiveCityLimit  = 200 // intent combinations in massive sitemaps
	tripleCityLimit   = 20  // intent+category+city in standard sitemaps
)

// StandardSpace builds the per-locale sitemap URL set. cities is the
// locale's eligible city slug list (top cities per country, population
// order), already truncated by the caller to the standard limit.
//
// Pattern order: pure categories; intent+category; category+city;
// high-value intent+category+city; category+modifier.
func StandardSpace(baseURL string, loc locale.Locale, cities []string) *Space {
	prefix := baseURL + "/" + string(loc)
	cats := CategorySlugs(loc)
	topCats := topOf(cats, topCategoryCount)

	join := func(parts []string) string {
		url := prefix + "/"
		for i, p := range parts {
			if i > 0 {
				url += "-"
			}
			url += p
		}
		return url
	}

	return &Space{segments: []Segment{
		// 1. pure category pages
		crossSegment{dims: [][]string{cats}, render: join},
		// 2. intent + category
		crossSegment{dims: [][]string{intentSlugList(standardIntents, loc), cats}, render: join},
		// 3. category + city (city varies slowest, matching crawl priority
		// of whole-city blocks)
		crossSegment{
			dims: [][]string{cities, cats},
			render: func(parts []string) string {
				return join([]string{parts[1], parts[0]})
			},
		},
		// 4. intent + category + city, bounded to high-value combinations
		crossSegment{
			dims: [][]string{topOf(cities, tripleCityLimit), intentSlugList(highValueIntents, loc), topCats},
			render: func(parts []string) string {
				return join([]string{parts[1], parts[2], parts[0]})
			},
		},
		// 5. category + marketing modifier
		crossSegment{
			dims: [][]string{modifiersFor(loc), topCats},
			render: func(parts []string) string {
				return join([]string{parts[1], parts[0]})
			},
		},
	}}
}

// MassiveSpace builds the extended combinatorial URL set that is served in
// 5000-URL parts. cities is the locale's full eligible city slug list.
func MassiveSpace(baseURL string, loc locale.Locale, cities []string) *Space {
	prefix := baseURL + "/" + string(loc)
	cats := CategorySlugs(loc)
	topCats := topOf(cats, topCategoryCount)

	join := func(parts []string) string {
		url := prefix + "/"
		for i, p := range parts {
			if i > 0 {
				url += "-"
			}
			url += p
		}
		return url
	}

	return &Space{segments: []Segment{
		// 1. category + city, every eligible city
		crossSegment{dims: [][]string{cats, cities}, render: join},
		// 2. intent + category + city, top cities only
		crossSegment{
			dims:   [][]string{intentSlugList(massiveIntents, loc), topCats, topOf(cities, massiveCityLimit)},
			render: join,
		},
	}}
}
