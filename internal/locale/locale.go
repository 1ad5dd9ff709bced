package locale

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Locale is a lowercase two-letter language code from the supported set.
type Locale string

// Default is the single canonical fallback. Every resolution path in the
// service goes through Resolve, so an unsupported locale always lands here.
const Default Locale = "en"

// Supported lists the locales the storefront serves, in sitemap order.
var Supported = []Locale{"es", "en", "de", "fr", "it", "pt", "nl", "pl", "cs", "el"}

func IsSupported(s string) bool {
	for _, l := range Supported {
		if string(l) == s {
			return true
		}
	}
	return false
}

// Resolve returns the locale unchanged when supported, otherwise Default.
func Resolve(s string) Locale {
	if IsSupported(s) {
		return Locale(s)
	}
	return Default
}

// Negotiate picks the best supported locale from an Accept-Language header
// value, e.g. "es-ES,es;q=0.9,en;q=0.8". Region subtags are stripped.
func Negotiate(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return Default
	}

	type candidate struct {
		code string
		q    float64
	}

	var candidates []candidate
	for _, part := range strings.Split(acceptLanguage, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code := part
		q := 1.0
		if idx := strings.Index(part, ";q="); idx >= 0 {
			code = part[:idx]
			if v, err := strconv.ParseFloat(part[idx+3:], 64); err == nil {
				q = v
			}
		}
		if dash := strings.Index(code, "-"); dash >= 0 {
			code = code[:dash]
		}
		candidates = append(candidates, candidate{code: strings.ToLower(strings.TrimSpace(code)), q: q})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].q > candidates[j].q })

	for _, c := range candidates {
		if IsSupported(c.code) {
			return Locale(c.code)
		}
	}
	return Default
}

const ctxLocaleKey = "request_locale"

// Middleware resolves the request locale from the :locale path param when
// present, otherwise from Accept-Language, and stores it on the context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loc Locale
		if p := c.Param("locale"); p != "" {
			loc = Resolve(p)
		} else if q := c.Query("locale"); q != "" {
			loc = Resolve(q)
		} else {
			loc = Negotiate(c.GetHeader("Accept-Language"))
		}
		c.Set(ctxLocaleKey, loc)
		c.Next()
	}
}

// FromContext returns the locale stored by Middleware, or Default.
func FromContext(c *gin.Context) Locale {
	if v, ok := c.Get(ctxLocaleKey); ok {
		if loc, ok := v.(Locale); ok {
			return loc
		}
	}
	return Default
}
