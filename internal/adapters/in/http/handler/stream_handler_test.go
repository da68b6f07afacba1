package handler

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"straightenup/internal/platform/bus"
)

func TestParseTopics(t *testing.T) {
	assert.Nil(t, parseTopics(""))
	assert.Nil(t, parseTopics(" , ,"))

	set := parseTopics("carts, orders")
	require.NotNil(t, set)
	assert.True(t, set["carts"])
	assert.True(t, set["orders"])
	assert.False(t, set["forums"])
}

func TestStreamDeliversOnlyRequestedTopics(t *testing.T) {
	b := bus.New()
	defer b.Close()

	srv := httptest.NewServer(NewStreamHandler(b))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?topics=orders")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// the subscription is live once the response headers arrive, so both
	// publishes land; only the requested one may come through.
	b.Notify("forums")
	b.Notify("orders")

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		assert.Equal(t, "data: orders", strings.TrimSpace(line))
		return
	}
}

func TestStreamWithoutTopicsForwardsEverything(t *testing.T) {
	b := bus.New()
	defer b.Close()

	srv := httptest.NewServer(NewStreamHandler(b))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	b.Notify("forums")

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			assert.Equal(t, "data: forums", strings.TrimSpace(line))
			return
		}
	}
}

func TestStreamRejectsNonGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mall/stream", nil)

	NewStreamHandler(bus.New()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
