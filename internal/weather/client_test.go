package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCurrent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Mumbai", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Write([]byte(`{"name":"Mumbai","main":{"temp":32.5},"weather":[{"main":"Clear","description":"clear sky"}]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, zap.NewNop())

	got := client.Current(context.Background(), "Mumbai")
	require.NotNil(t, got)
	assert.Equal(t, 32.5, got.Temp)
	assert.Equal(t, "Clear", got.Condition)
	assert.Equal(t, "Mumbai", got.Location)

	// Second lookup within the cache window must not hit the API again.
	got = client.Current(context.Background(), "mumbai")
	require.NotNil(t, got)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCurrentWithoutKey(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())
	assert.Nil(t, client.Current(context.Background(), "Mumbai"))
}

func TestCurrentEmptyLocation(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"}, zap.NewNop())
	assert.Nil(t, client.Current(context.Background(), ""))
}

func TestCurrentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, zap.NewNop())
	assert.Nil(t, client.Current(context.Background(), "Nowhere"))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		weather *Weather
		want    string
	}{
		{"nil weather", nil, "neutral"},
		{"hot", &Weather{Temp: 35, Condition: "Clear"}, "hot"},
		{"cold by temperature", &Weather{Temp: 5, Condition: "Clear"}, "cold"},
		{"rainy", &Weather{Temp: 20, Condition: "Rain"}, "rainy"},
		{"cloudy", &Weather{Temp: 20, Condition: "Clouds"}, "cloudy"},
		{"snow counts as cold", &Weather{Temp: 12, Condition: "Snow"}, "cold"},
		{"sunny", &Weather{Temp: 22, Condition: "Clear"}, "sunny"},
		{"unmatched condition", &Weather{Temp: 20, Condition: "Haze"}, "neutral"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.weather))
		})
	}
}
