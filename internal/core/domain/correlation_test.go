package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCorrelation(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		wantID string
		wantOK bool
	}{
		{"absolute url", "https://shop.example.com/p/1?cid=C1&utm=ig", "C1", true},
		{"relative landing site", "/products/hat?utm_source=ig&cid=Ab12Cd34Ef56", "Ab12Cd34Ef56", true},
		{"no cid", "https://shop.example.com/other", "", false},
		{"other params only", "/p/1?utm=ig", "", false},
		{"empty value", "/p/1?cid=&utm=ig", "", false},
		{"empty input", "", "", false},
		{"free text fallback", "landing cid=C9 via ig", "C9", true},
		{"bare query text", "utm=ig&cid=C9", "C9", true},
		{"semicolon separated", "/p/1?utm=ig;cid=C7", "C7", true},
		{"suffix not matched", "/p/1?xcid=C1", "", false},
		{"fragment ignored", "/p/1?cid=C2#top", "C2", true},
		{"query inside fragment", "https://shop.example.com/p/1#x?cid=C1", "", false},
		{"fallback cid inside fragment", "landing /p/1#promo&cid=C1", "", false},
		{"repeated param last wins", "https://shop.example.com/p/1?cid=OLD&cid=NEW&utm=ig", "NEW", true},
		{"repeated param trailing empty", "/p/1?cid=C1&cid=", "C1", true},
		{"fallback last match wins", "/p/1?utm=ig;cid=OLD;cid=NEW", "NEW", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ParseCorrelation(tc.raw, DefaultCorrelationParam)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestParseCorrelationCustomParam(t *testing.T) {
	id, ok := ParseCorrelation("/p/1?ref=C3&cid=C4", "ref")
	assert.True(t, ok)
	assert.Equal(t, "C3", id)
}

func TestCorrelateOrderFallsBackToReferrer(t *testing.T) {
	o := OrderNotification{
		LandingSite:   "/collections/all",
		ReferringSite: "https://shop.example.com/p/1?cid=C5",
	}
	id, ok := CorrelateOrder(o, DefaultCorrelationParam)
	assert.True(t, ok)
	assert.Equal(t, "C5", id)

	_, ok = CorrelateOrder(OrderNotification{}, DefaultCorrelationParam)
	assert.False(t, ok)
}
