// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClientWithConfig(&ClientConfig{BaseURL: url, Timeout: 5 * time.Second})
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "What is the capital of France?", req.Message)

		json.NewEncoder(w).Encode(ChatResponse{
			Response: "Paris",
			Sources:  []string{"doc1.pdf"},
		})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).SendMessage(context.Background(), "What is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris", resp.Response)
	assert.Equal(t, []string{"doc1.pdf"}, resp.Sources)
}

func TestSendMessagePrefersDetailOverStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "vector store is empty"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SendMessage(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, "vector store is empty", err.Error())
}

func TestSendMessageFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SendMessage(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendMessageRejectsMissingResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 2xx but the shape is wrong
		w.Write([]byte(`{"answer": "Paris"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SendMessage(context.Background(), "hi")
	require.Error(t, err)
	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrKindInvalidResponse, clientErr.Kind)
}

func TestSendMessageUnreachable(t *testing.T) {
	// Closed server: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).SendMessage(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

// =============================================================================
// UPLOAD TESTS
// =============================================================================

func TestUploadDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "report.pdf", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, "pdf bytes", string(content))

		json.NewEncoder(w).Encode(UploadAck{Filename: "report.pdf", Status: "uploaded"})
	}))
	defer srv.Close()

	ack, err := newTestClient(srv.URL).UploadDocument(context.Background(), "report.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "uploaded", ack.Status)
	assert.Equal(t, "report.pdf", ack.Filename)
}

func TestUploadDocumentRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Only .txt and .pdf files are supported."})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).UploadDocument(context.Background(), "evil.exe", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, "Only .txt and .pdf files are supported.", err.Error())
}

// =============================================================================
// DOCUMENT LIST TESTS
// =============================================================================

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents", r.URL.Path)
		json.NewEncoder(w).Encode([]string{"a.pdf", "b.txt"})
	}))
	defer srv.Close()

	docs, err := newTestClient(srv.URL).ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.txt"}, docs)
}

func TestListDocumentsDegradesToEmptyOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		closed  bool
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, false},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}, false},
		{"unreachable", func(w http.ResponseWriter, r *http.Request) {}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			if tt.closed {
				srv.Close()
			} else {
				defer srv.Close()
			}

			docs, err := newTestClient(srv.URL).ListDocuments(context.Background())
			require.NoError(t, err, "listing failures must degrade, not error")
			assert.NotNil(t, docs)
			assert.Empty(t, docs)
		})
	}
}

// =============================================================================
// DELETE / CONTENT TESTS
// =============================================================================

func TestDeleteDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/documents/notes%20v2.txt", r.URL.EscapedPath())
		json.NewEncoder(w).Encode(DeleteAck{Filename: "notes v2.txt", Status: "deleted"})
	}))
	defer srv.Close()

	ack, err := newTestClient(srv.URL).DeleteDocument(context.Background(), "notes v2.txt")
	require.NoError(t, err)
	assert.Equal(t, "deleted", ack.Status)
}

func TestDeleteDocumentError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "document not found"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).DeleteDocument(context.Background(), "ghost.pdf")
	require.Error(t, err)
	assert.Equal(t, "document not found", err.Error())
}

func TestDocumentContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/documents/a.txt/content", r.URL.Path)
		w.Write([]byte("file body"))
	}))
	defer srv.Close()

	data, err := newTestClient(srv.URL).DocumentContent(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "file body", string(data))
}

// =============================================================================
// HEALTH CHECK TESTS
// =============================================================================

func TestCheckRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv.URL).CheckRunning(context.Background()))
}

func TestCheckRunningDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := newTestClient(srv.URL).CheckRunning(context.Background())
	assert.True(t, IsUnreachable(err))
}
