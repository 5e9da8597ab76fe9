package gravatar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_URL(t *testing.T) {
	url := URL("foo@bar.com", 100)
	require.Equal(t,
		"https://www.gravatar.com/avatar/f3ada405ce890b6f8204094deb12d8a8?s=100", url)
}

func Test_URL_normalizesEmail(t *testing.T) {
	require.Equal(t, URL("foo@bar.com", 100), URL("  Foo@Bar.com  ", 100))
	require.NotEqual(t, URL("foo@bar.com", 100), URL("baz@bar.com", 100))
}

func Test_URL_size(t *testing.T) {
	require.True(t, strings.HasSuffix(URL("foo@bar.com", 48), "?s=48"))

	// Non-positive sizes fall back to the default.
	require.True(t, strings.HasSuffix(URL("foo@bar.com", 0), "?s=100"))
}
