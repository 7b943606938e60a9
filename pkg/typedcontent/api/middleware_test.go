package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candell/typed-content/pkg/typedcontent"
	"github.com/candell/typed-content/pkg/typedcontent/annotation"
	annomemory "github.com/candell/typed-content/pkg/typedcontent/annotation/memory"
	memorystore "github.com/candell/typed-content/pkg/typedcontent/blockstore/memory"
)

func TestRequestSizeLimit(t *testing.T) {
	gateway, err := typedcontent.New(
		memorystore.New(),
		typedcontent.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	annotations, err := annotation.NewService(annomemory.New())
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(RequestSizeLimit(8))
	router.Mount("/contents", NewContentHandler(gateway, annotations).Routes())

	t.Run("UnderLimit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contents", bytes.NewReader([]byte("howdy")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("OverLimit", func(t *testing.T) {
		payload := bytes.Repeat([]byte("x"), 64)
		req := httptest.NewRequest(http.MethodPost, "/contents", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
