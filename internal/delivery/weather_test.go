package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeatherCurrent(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("☀️ +72°F\n"))
	}))
	defer server.Close()

	c := NewWeatherClient("New York")
	c.baseURL = server.URL

	assert.Equal(t, "New York ☀️ +72°F", c.Current(context.Background()))
	assert.Equal(t, "/New+York", gotPath)
	assert.Equal(t, "format=%c+%t", gotQuery)
	assert.Equal(t, "DailyBriefing/1.0", gotUA)
}

func TestWeatherCurrentHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown location", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewWeatherClient("New York")
	c.baseURL = server.URL
	assert.Equal(t, "", c.Current(context.Background()))
}

func TestWeatherCurrentEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  \n"))
	}))
	defer server.Close()

	c := NewWeatherClient("New York")
	c.baseURL = server.URL
	assert.Equal(t, "", c.Current(context.Background()))
}

func TestWeatherCurrentServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := NewWeatherClient("New York")
	c.baseURL = server.URL
	assert.Equal(t, "", c.Current(context.Background()))
}
