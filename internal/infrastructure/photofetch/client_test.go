package photofetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/infrastructure/photofetch"
)

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	c := photofetch.NewClient("", time.Second)
	body, err := c.Fetch(context.Background(), srv.URL+"/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))
}

func TestFetch_RutaRelativaUsaBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uploads/sites/1/x.jpg", r.URL.Path)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := photofetch.NewClient(srv.URL+"/", time.Second)
	_, err := c.Fetch(context.Background(), "/uploads/sites/1/x.jpg")
	assert.NoError(t, err)
}

func TestFetch_RutaRelativaIgnoraRutaDeLaBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uploads/sites/1/x.jpg", r.URL.Path, "la ruta de la base no se duplica")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := photofetch.NewClient(srv.URL+"/uploads", time.Second)
	body, err := c.Fetch(context.Background(), "/uploads/sites/1/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestFetch_BaseRelativaNoResuelve(t *testing.T) {
	_, err := photofetch.NewClient("/uploads", time.Second).Fetch(context.Background(), "/uploads/sites/1/x.jpg")
	assert.Error(t, err, "sin origen absoluto la URL relativa no se puede descargar")
}

func TestFetch_EstadoNo2xxSinReintentos(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := photofetch.NewClient("", time.Second)
	_, err := c.Fetch(context.Background(), srv.URL+"/a.jpg")
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "un único intento")
}

func TestFetch_URLVacia(t *testing.T) {
	_, err := photofetch.NewClient("", time.Second).Fetch(context.Background(), "")
	assert.Error(t, err)
}
