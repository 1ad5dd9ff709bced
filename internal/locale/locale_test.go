package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Run("supported locales pass through", func(t *testing.T) {
		for _, l := range Supported {
			assert.Equal(t, l, Resolve(string(l)))
		}
	})

	t.Run("anything else falls back to the default", func(t *testing.T) {
		for _, s := range []string{"", "xx", "EN", "es-ES", "english", "日本語"} {
			assert.Equal(t, Default, Resolve(s), "input %q", s)
		}
	})
}

func TestNegotiate(t *testing.T) {
	t.Run("empty header", func(t *testing.T) {
		assert.Equal(t, Default, Negotiate(""))
	})

	t.Run("region subtags are stripped", func(t *testing.T) {
		assert.Equal(t, Locale("es"), Negotiate("es-ES"))
		assert.Equal(t, Locale("de"), Negotiate("de-AT,de;q=0.9"))
	})

	t.Run("quality ordering wins over header order", func(t *testing.T) {
		assert.Equal(t, Locale("fr"), Negotiate("en;q=0.5,fr;q=0.9"))
	})

	t.Run("unsupported entries are skipped", func(t *testing.T) {
		assert.Equal(t, Locale("pl"), Negotiate("ja,zh;q=0.9,pl;q=0.8"))
	})

	t.Run("nothing supported falls back", func(t *testing.T) {
		assert.Equal(t, Default, Negotiate("ja,ko;q=0.8"))
	})
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("cs"))
	assert.False(t, IsSupported("CS"))
	assert.False(t, IsSupported("sv"))
}
