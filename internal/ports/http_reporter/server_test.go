package http_reporter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syscll/metrics-server/storage/inmemory"
)

func TestServer_StartServesInBackground(t *testing.T) {
	store := inmemory.NewStore()
	store.Update([]byte("payload"))

	srv := NewServer(NewHandler(store, "/metrics", zap.NewNop()), zap.NewNop())
	require.NoError(t, srv.Start("127.0.0.1:0"), "Start must return once the listener is bound")
	defer srv.Shutdown(context.Background())

	res, err := http.Get(fmt.Sprintf("http://%s/metrics", srv.Addr()))
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "payload", string(body))
}

func TestServer_StartInvalidAddress(t *testing.T) {
	srv := NewServer(NewHandler(inmemory.NewStore(), "/metrics", zap.NewNop()), zap.NewNop())

	err := srv.Start("127.0.0.1:notaport")
	require.Error(t, err, "an unbindable address must fail synchronously")
}

func TestServer_StartAddressInUse(t *testing.T) {
	store := inmemory.NewStore()

	first := NewServer(NewHandler(store, "/metrics", zap.NewNop()), zap.NewNop())
	require.NoError(t, first.Start("127.0.0.1:0"))
	defer first.Shutdown(context.Background())

	second := NewServer(NewHandler(store, "/metrics", zap.NewNop()), zap.NewNop())
	require.Error(t, second.Start(first.Addr().String()), "binding an address already in use must fail")
}

func TestServer_Shutdown(t *testing.T) {
	srv := NewServer(NewHandler(inmemory.NewStore(), "/metrics", zap.NewNop()), zap.NewNop())
	require.NoError(t, srv.Start("127.0.0.1:0"))
	addr := srv.Addr().String()

	res, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
	require.NoError(t, err)
	res.Body.Close()

	require.NoError(t, srv.Shutdown(context.Background()))

	_, err = http.Get(fmt.Sprintf("http://%s/metrics", addr))
	assert.Error(t, err, "requests after shutdown must fail to connect")
}
