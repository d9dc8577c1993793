package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{
  "highlighted_text": "Take <span style=\"background-color: lightgreen; font-weight: bold;\">Aspirin</span>",
  "drugs": [
    {"trade_name": "Aspirin", "inn": "acetylsalicylic acid", "obligation": null, "deadline_to_submit": "2024-05-01"}
  ]
}`

func newClient(url string, retries int) *HTTPClient {
	return &HTTPClient{
		Endpoint:    url,
		Retries:     retries,
		InitialWait: time.Millisecond,
		Logger:      zerolog.Nop(),
	}
}

func TestFind_Success(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	res, err := newClient(srv.URL, 0).Find(context.Background(), Request{Text: "Take Aspirin", Fuzzy: true})
	require.NoError(t, err)

	assert.Equal(t, Request{Text: "Take Aspirin", Fuzzy: true}, got)
	assert.Contains(t, res.HighlightedText, ">Aspirin</span>")
	require.Len(t, res.Drugs, 1)
	assert.Equal(t, Drug{
		TradeName:        "Aspirin",
		INN:              "acetylsalicylic acid",
		DeadlineToSubmit: "2024-05-01",
	}, res.Drugs[0])
}

func TestFind_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 2).Find(context.Background(), Request{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFind_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 1).Find(context.Background(), Request{Text: "x"})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFind_NoRetry(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "client error", status: http.StatusUnprocessableEntity, body: `{"detail":"bad"}`},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantErr: ErrInvalidResponse},
		{name: "missing drugs", status: http.StatusOK, body: `{"highlighted_text":"x"}`, wantErr: ErrInvalidResponse},
		{name: "wrong type", status: http.StatusOK, body: `{"highlighted_text":1,"drugs":[]}`, wantErr: ErrInvalidResponse},
		{name: "drug without name", status: http.StatusOK, body: `{"highlighted_text":"x","drugs":[{"inn":"y"}]}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newClient(srv.URL, 3).Find(context.Background(), Request{Text: "x"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestFind_EmptyText(t *testing.T) {
	_, err := newClient("http://unused.invalid", 0).Find(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestFind_ContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newClient(srv.URL, 5)
	c.InitialWait = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Find(ctx, Request{Text: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
