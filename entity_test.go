package portadoc_test

import (
	"testing"

	"github.com/awrzos/portadoc"
	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	t.Parallel()

	t.Run("decodes named entities", func(t *testing.T) {
		t.Parallel()

		got := portadoc.DecodeEntities("Fish &amp; chips &ndash; today&rsquo;s special")

		assert.Equal(t, "Fish & chips – today’s special", got)
	})

	t.Run("decodes decimal numeric references", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "A", portadoc.DecodeEntities("&#65;"))
		assert.Equal(t, "é", portadoc.DecodeEntities("&#233;"))
	})

	t.Run("decodes hex numeric references", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "A", portadoc.DecodeEntities("&#x41;"))
		assert.Equal(t, "\U0001F600", portadoc.DecodeEntities("&#x1F600;"))
	})

	t.Run("unknown entities pass through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "&notarealentity;", portadoc.DecodeEntities("&notarealentity;"))
	})

	t.Run("literal ampersand is not reinterpreted", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "AT&T up & running", portadoc.DecodeEntities("AT&T up & running"))
	})

	t.Run("idempotent on decoded text", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"plain text",
			"Fish &amp; chips",
			"&#x41;&#66;&nbsp;",
			"a < b > c",
		}
		for _, in := range inputs {
			once := portadoc.DecodeEntities(in)
			twice := portadoc.DecodeEntities(once)
			assert.Equal(t, once, twice)
		}
	})

	t.Run("out of range numeric reference passes through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "&#x110000;", portadoc.DecodeEntities("&#x110000;"))
		assert.Equal(t, "&#0;", portadoc.DecodeEntities("&#0;"))
	})
}
