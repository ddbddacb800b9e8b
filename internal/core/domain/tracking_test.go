package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirectURL(t *testing.T) {
	cases := []struct {
		name   string
		target string
		want   string
	}{
		{"no query", "https://shop.example.com/p/1", "https://shop.example.com/p/1?cid=C1"},
		{"existing query", "https://shop.example.com/p/1?variant=2", "https://shop.example.com/p/1?variant=2&cid=C1"},
		{"trailing question mark", "https://shop.example.com/p/1?", "https://shop.example.com/p/1?cid=C1"},
		{"trailing ampersand", "https://shop.example.com/p/1?a=b&", "https://shop.example.com/p/1?a=b&cid=C1"},
		{"fragment", "https://shop.example.com/p/1?a=b#reviews", "https://shop.example.com/p/1?a=b&cid=C1#reviews"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RedirectURL(tc.target, "cid", "C1"))
		})
	}
}

// TestRedirectURLKeepsOriginAndQuery checks the configure/visit round trip
// property: origin and path are preserved, the query gains only cid.
func TestRedirectURLKeepsOriginAndQuery(t *testing.T) {
	target := "https://shop.example.com/collections/summer?sort=price&page=2"
	got, err := url.Parse(RedirectURL(target, "cid", "abc123"))
	require.NoError(t, err)
	orig, err := url.Parse(target)
	require.NoError(t, err)

	assert.Equal(t, orig.Scheme, got.Scheme)
	assert.Equal(t, orig.Host, got.Host)
	assert.Equal(t, orig.Path, got.Path)

	want := orig.Query()
	want.Set("cid", "abc123")
	assert.Equal(t, want, got.Query())
}

// TestRedirectURLCorrelatesToIssuer covers targets that already carry a
// cid: the token read back from the redirect is the issuing campaign's.
func TestRedirectURLCorrelatesToIssuer(t *testing.T) {
	for _, target := range []string{
		"https://shop.example.com/p/1?cid=OTHER",
		"https://shop.example.com/p/1?cid=OTHER&utm=ig#reviews",
		"https://shop.example.com/p/1?cid=",
	} {
		id, ok := ParseCorrelation(RedirectURL(target, DefaultCorrelationParam, "OWN"), DefaultCorrelationParam)
		assert.True(t, ok, target)
		assert.Equal(t, "OWN", id, target)
	}
}

func TestTrackingLink(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/c/C1", TrackingLink("http://localhost:8080/c", "C1", ""))
	assert.Equal(t, "http://localhost:8080/c/C1", TrackingLink("http://localhost:8080/c/", "C1", ""))
	assert.Equal(t, "https://t.example.com/c/C1?src=instagram", TrackingLink("https://t.example.com/c", "C1", "instagram"))
}

func TestValidateTargetURL(t *testing.T) {
	for _, raw := range []string{"https://shop.example.com/p/1", "  http://shop.example.com  ", "HTTPS://Shop.Example.com/x?y=1"} {
		got, err := ValidateTargetURL(raw)
		require.NoError(t, err, raw)
		assert.NotContains(t, got, " ")
	}
	for _, raw := range []string{"", "   ", "shop.example.com", "ftp://shop.example.com", "https://", "http//broken", "javascript:alert(1)"} {
		_, err := ValidateTargetURL(raw)
		assert.ErrorIs(t, err, ErrInvalidTargetURL, raw)
	}
}
