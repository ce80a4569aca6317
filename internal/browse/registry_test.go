package browse

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newCountingRegistry(ttl time.Duration) (*Registry, *int) {
	built := 0
	r := NewRegistry(func(initial url.Values, cookie string) *Controller {
		built++
		return NewController(okFetcher(1, 3), initial, WithSessionCookie(cookie))
	}, ttl)
	return r, &built
}

func TestRegistryReusesControllerPerSession(t *testing.T) {
	r, built := newCountingRegistry(time.Hour)

	a := r.Get("sess-a", url.Values{"page": {"2"}}, "")
	b := r.Get("sess-a", url.Values{}, "")
	assert.Same(t, a, b, "the session keeps its controller between requests")
	assert.Equal(t, 1, *built)
	assert.Equal(t, 2, a.FilterView().Page, "first-seen address bar seeds the state")

	c := r.Get("sess-b", url.Values{}, "")
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, *built)
}

func TestRegistryDropAndPrune(t *testing.T) {
	r, built := newCountingRegistry(time.Hour)

	r.Get("sess-a", url.Values{}, "")
	r.Drop("sess-a")
	r.Get("sess-a", url.Values{}, "")
	assert.Equal(t, 2, *built, "dropped sessions rebuild from scratch")

	// expired entries are pruned on access
	short, builtShort := newCountingRegistry(time.Nanosecond)
	short.Get("sess-x", url.Values{}, "")
	time.Sleep(time.Millisecond)
	short.Get("sess-x", url.Values{}, "")
	assert.Equal(t, 2, *builtShort)
}
