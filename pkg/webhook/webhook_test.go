package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/hostgrep/pkg/filter"
	"github.com/ccollicutt/hostgrep/pkg/hostsfile"
	"github.com/ccollicutt/hostgrep/pkg/output"
)

func newTestReport(t *testing.T) *output.Report {
	t.Helper()
	f, err := filter.New(filter.WithPattern("db"))
	require.NoError(t, err)

	files := []*hostsfile.File{{
		Source: "/etc/hosts",
		Lines:  hostsfile.ParseFile("127.0.0.1 localhost\n10.0.0.6 db.lan\n"),
	}}
	return output.NewReport(files, f, time.Now())
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http", "http://hooks.example.com/hostgrep", false},
		{"https", "https://hooks.example.com", false},
		{"empty", "", true},
		{"no scheme", "hooks.example.com/x", true},
		{"ftp", "ftp://hooks.example.com", true},
		{"unparseable", "://invalid-url", true},
		{"no host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(Options{URL: tt.url})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.Equal(t, DefaultTimeout, c.timeout)
		})
	}
}

func TestClient_Send_Success(t *testing.T) {
	var (
		body        []byte
		contentType string
		auth        string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		auth = r.Header.Get("Authorization")
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	c, err := NewClient(Options{URL: server.URL})
	require.NoError(t, err)

	resp := c.Send(context.Background(), Event{
		Type:    EventChanged,
		Changed: []string{"/etc/hosts"},
		Report:  newTestReport(t),
	})
	require.True(t, resp.Success(), "error: %v", resp.Error)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, `{"status":"ok"}`, resp.Body)
	require.Equal(t, "application/json", contentType)
	require.Empty(t, auth)

	var got Event
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, EventChanged, got.Type)
	require.Equal(t, []string{"/etc/hosts"}, got.Changed)
	require.False(t, got.SentAt.IsZero())
	require.Equal(t, 1, got.Report.Summary.Matched)
	require.Equal(t, "10.0.0.6", got.Report.Entries[0].Line.IPValue())
}

func TestClient_Send_WithBearerToken(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := NewClient(Options{URL: server.URL, Token: "secret-token-123"})
	require.NoError(t, err)

	resp := c.Send(context.Background(), Event{Type: EventInitial, Report: newTestReport(t)})
	require.True(t, resp.Success(), "error: %v", resp.Error)
	require.Equal(t, "Bearer secret-token-123", auth)
}

func TestClient_Send_Failures(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	tests := []struct {
		name       string
		opts       Options
		wantStatus int
	}{
		{"server error", Options{URL: broken.URL}, http.StatusInternalServerError},
		{"timeout", Options{URL: slow.URL, Timeout: 50 * time.Millisecond}, 0},
		{"connection refused", Options{URL: "http://127.0.0.1:59999", Timeout: 100 * time.Millisecond}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.opts)
			require.NoError(t, err)

			resp := c.Send(context.Background(), Event{Type: EventInitial, Report: newTestReport(t)})
			require.False(t, resp.Success())
			require.Error(t, resp.Error)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name        string
		resp        Response
		wantSuccess bool
	}{
		{"200 OK", Response{StatusCode: 200}, true},
		{"204 No Content", Response{StatusCode: 204}, true},
		{"302 Found", Response{StatusCode: 302}, false},
		{"400 Bad Request", Response{StatusCode: 400}, false},
		{"with error", Response{StatusCode: 200, Error: io.EOF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantSuccess, tt.resp.Success())
		})
	}
}
