package fflogs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fightprog/internal/events"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cacheTTL time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:           srv.URL,
		APIKey:            "secret-key",
		RequestsPerSecond: 1000,
		Burst:             1000,
		CacheTTL:          cacheTTL,
	})
}

func TestFetchPage_BuildsRequestAndDecodes(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events":[{"type":"cast","timestamp":1500,"sourceIsFriendly":false,"targetIsFriendly":true,"ability":{"name":"Akh Morn","guid":26376,"type":1}},{"type":"combatantinfo","timestamp":1501}],"nextPageTimestamp":1502}`))
	}, 0)

	hostile := Hostile
	ability := int64(26376)
	page, err := c.FetchPage(context.Background(), ViewCasts, "aBcDeFgHiJkLmNoP", Window{
		Start: 1000, End: 5000, Hostility: &hostile, AbilityID: &ability,
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/report/events/casts/aBcDeFgHiJkLmNoP", gotPath)
	assert.Equal(t, map[string]string{
		"start":     "1000",
		"end":       "5000",
		"hostility": "1",
		"abilityid": "26376",
		"api_key":   "secret-key",
	}, gotQuery)

	require.Len(t, page.Events, 2)
	assert.IsType(t, &events.Cast{}, page.Events[0])
	assert.IsType(t, &events.Unrecognized{}, page.Events[1])
	require.NotNil(t, page.NextPageTimestamp)
	assert.Equal(t, uint64(1502), *page.NextPageTimestamp)
}

func TestFetchPage_LastPageHasNoCursor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[]}`))
	}, 0)

	page, err := c.FetchPage(context.Background(), ViewSummary, "aBcDeFgHiJkLmNoP", Window{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Events)
	assert.Nil(t, page.NextPageTimestamp)
}

func TestFetchFights_Decodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/report/fights/aBcDeFgHiJkLmNoP", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("translate"))
		_, _ = w.Write([]byte(`{
			"fights":[{"id":1,"start_time":100,"end_time":60100,"boss":1065,"name":"Dragonsong's Reprise","kill":false}],
			"friendlies":[],"enemies":[],"friendlyPets":[],"enemyPets":[],"phases":[],
			"title":"Prog night","start":1650000000000,"end":1650003600000
		}`))
	}, 0)

	list, err := c.FetchFights(context.Background(), "aBcDeFgHiJkLmNoP")
	require.NoError(t, err)
	require.Len(t, list.Fights, 1)

	f := list.Fights[0]
	assert.Equal(t, int64(1), f.ID)
	assert.Equal(t, "Dragonsong's Reprise", *f.Name)
	assert.Equal(t, uint64(60000), f.Duration())
	assert.Equal(t, uint64(1650000000000), *list.Start)
	assert.Equal(t, uint64(1650003600000), *list.End)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("slow down"))
		}, 0)

		_, err := c.FetchFights(context.Background(), "aBcDeFgHiJkLmNoP")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
		assert.Equal(t, "slow down", statusErr.Body)
	})

	t.Run("decode", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"events": "nope"}`))
		}, 0)

		_, err := c.FetchPage(context.Background(), ViewSummary, "aBcDeFgHiJkLmNoP", Window{End: 10})
		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("request", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}, 0)

		_, err := c.FetchFights(context.Background(), "")
		var reqErr *RequestError
		assert.ErrorAs(t, err, &reqErr)
	})

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewClient(Config{BaseURL: url, RequestsPerSecond: 1000, Burst: 1000})
		_, err := c.FetchFights(context.Background(), "aBcDeFgHiJkLmNoP")
		var transportErr *TransportError
		assert.ErrorAs(t, err, &transportErr)
	})

	t.Run("cancelled", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, 0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.FetchFights(ctx, "aBcDeFgHiJkLmNoP")
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestClient_CachesResponses(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"events":[{"type":"death","timestamp":5,"sourceIsFriendly":false,"targetIsFriendly":true}]}`))
	}, time.Minute)

	w := Window{Start: 0, End: 100}
	for range 3 {
		page, err := c.FetchPage(context.Background(), ViewDeaths, "aBcDeFgHiJkLmNoP", w)
		require.NoError(t, err)
		require.Len(t, page.Events, 1)
	}
	assert.Equal(t, int32(1), hits.Load())

	_, err := c.FetchPage(context.Background(), ViewDeaths, "aBcDeFgHiJkLmNoP", w.WithStart(50))
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load(), "a different window is a different cache entry")
}

func TestClient_CacheDisabled(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"events":[]}`))
	}, 0)

	for range 2 {
		_, err := c.FetchPage(context.Background(), ViewSummary, "aBcDeFgHiJkLmNoP", Window{End: 1})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestWindow_Values(t *testing.T) {
	friendly := Friendly
	target := int64(7)
	translate := true
	w := Window{Start: 5, End: 9, Hostility: &friendly, TargetID: &target, Filter: "type = \"death\"", Translate: &translate}

	v := w.Values()
	assert.Equal(t, "5", v.Get("start"))
	assert.Equal(t, "9", v.Get("end"))
	assert.Equal(t, "0", v.Get("hostility"))
	assert.Equal(t, "7", v.Get("targetid"))
	assert.Equal(t, `type = "death"`, v.Get("filter"))
	assert.Equal(t, "true", v.Get("translate"))
	assert.False(t, v.Has("abilityid"))
	assert.False(t, v.Has("api_key"))

	assert.True(t, w.Contains(5))
	assert.True(t, w.Contains(8))
	assert.False(t, w.Contains(9))
	assert.False(t, w.Contains(4))
}
