package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, 5*time.Second, nil)
	require.NoError(t, err)
	return c, srv
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("", time.Second, nil)
	require.Error(t, err)
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("file body"), 0644))

	var gotField, gotFilename, gotBody string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload_file", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		var buf bytes.Buffer
		_, err = buf.ReadFrom(file)
		require.NoError(t, err)

		gotField = "file"
		gotFilename = header.Filename
		gotBody = buf.String()

		json.NewEncoder(w).Encode(map[string]string{"id": "job-42"})
	}))

	id, err := c.UploadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "job-42", id)
	assert.Equal(t, "file", gotField)
	assert.Equal(t, "report.txt", gotFilename)
	assert.Equal(t, "file body", gotBody)
}

func TestUploadFile_ServerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	id, err := c.UploadFile(context.Background(), path)
	require.Error(t, err)
	assert.Empty(t, id, "no partial job ID may be retained on failure")
}

func TestUploadText_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr error
	}{
		{"empty", 0, ErrTextTooShort},
		{"just below minimum", MinTextLen - 1, ErrTextTooShort},
		{"at minimum", MinTextLen, nil},
		{"just below maximum", MaxTextLen - 1, nil},
		{"at maximum", MaxTextLen, ErrTextTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := 0
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				require.Equal(t, "/upload_text", r.URL.Path)

				var payload struct {
					Text string `json:"text"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.Len(t, payload.Text, tt.length)

				json.NewEncoder(w).Encode(map[string]string{"id": "job-7"})
			}))

			id, err := c.UploadText(context.Background(), strings.Repeat("a", tt.length))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, requests, "out-of-bounds text must never be submitted")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "job-7", id)
			assert.Equal(t, 1, requests)
		})
	}
}

func TestUploadText_BoundsCountCharactersNotBytes(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "job-7"})
	}))

	// Two bytes per character: well past the minimum in bytes, one
	// character short of it.
	short := strings.Repeat("ü", MinTextLen-1)
	_, err := c.UploadText(context.Background(), short)
	require.ErrorIs(t, err, ErrTextTooShort)

	id, err := c.UploadText(context.Background(), strings.Repeat("ü", MinTextLen))
	require.NoError(t, err)
	assert.Equal(t, "job-7", id)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		wire string
		want Status
	}{
		{"processing", StatusProcessing},
		{"completed", StatusCompleted},
		{"error", StatusError},
		{"failed", StatusUnrecognized},
		{"queued", StatusUnrecognized},
		{"", StatusUnrecognized},
	}

	for _, tt := range tests {
		t.Run("wire="+tt.wire, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/status/job-1", r.URL.Path)
				json.NewEncoder(w).Encode(map[string]string{"status": tt.wire})
			}))

			status, err := c.Status(context.Background(), "job-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestStatus_TransportFailure(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := c.Status(context.Background(), "job-1")
	require.Error(t, err)
}

func TestResult_PartialPayload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/result/job-9", r.URL.Path)
		w.Write([]byte(`{
			"filename": "paper.pdf",
			"status": "completed",
			"summary": {"document_summary": "An overview."}
		}`))
	}))

	res, err := c.Result(context.Background(), "job-9")
	require.NoError(t, err)

	assert.Equal(t, "paper.pdf", res.Filename)
	assert.Equal(t, StatusCompleted, res.Status)
	require.NotNil(t, res.Summary)
	require.NotNil(t, res.Summary.DocumentSummary)
	assert.Equal(t, "An overview.", *res.Summary.DocumentSummary)

	// Everything else absent at the boundary stays nil
	assert.Nil(t, res.Summary.SectionSummaries)
	assert.Nil(t, res.Summary.KeyInformation)
	assert.Nil(t, res.Summary.ImageAnalysis)
	assert.Nil(t, res.Summary.Conclusion)
}

func TestResult_ConfidenceZeroIsPresent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"filename": "scan.pdf",
			"status": "completed",
			"summary": {
				"image_analysis": [
					{"description": "a chart", "relevance": "high", "confidence": 0},
					{"description": "a logo", "relevance": "low"}
				]
			}
		}`))
	}))

	res, err := c.Result(context.Background(), "job-9")
	require.NoError(t, err)
	require.Len(t, res.Summary.ImageAnalysis, 2)

	first := res.Summary.ImageAnalysis[0]
	require.NotNil(t, first.Confidence, "confidence 0 is a defined value, not absent")
	assert.Equal(t, 0.0, *first.Confidence)

	assert.Nil(t, res.Summary.ImageAnalysis[1].Confidence)
}

func TestResult_StillProcessing(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "processing"}`))
	}))

	res, err := c.Result(context.Background(), "job-9")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, res.Status)
	assert.Nil(t, res.Summary)
}

func TestHistory(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files", r.URL.Path)
		w.Write([]byte(`[
			{"id": "a", "filename": "one.pdf", "created_at": "2026-08-01T10:00:00Z"},
			{"id": "b", "filename": "TextInput", "created_at": "2026-08-02T11:30:00Z"}
		]`))
	}))

	entries, err := c.History(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "one.pdf", entries[0].Filename)
	assert.Equal(t, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC), entries[0].CreatedAt)
	assert.Equal(t, "TextInput", entries[1].Filename)
}

func TestHistory_Empty(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	entries, err := c.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/download/job-3", r.URL.Path)
		w.Write([]byte("%PDF-1.4 fake"))
	}))

	var buf bytes.Buffer
	require.NoError(t, c.Download(context.Background(), "job-3", &buf))
	assert.Equal(t, "%PDF-1.4 fake", buf.String())
}

func TestDownloadURL(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	assert.Equal(t, srv.URL+"/download/job-3", c.DownloadURL("job-3"))
}

func TestParseStatus_RoundTrip(t *testing.T) {
	for _, s := range []Status{StatusProcessing, StatusCompleted, StatusError} {
		if got := ParseStatus(s.String()); got != s {
			t.Errorf("ParseStatus(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if StatusUnrecognized.Terminal() {
		t.Error("unrecognized status must not be terminal")
	}
	if !StatusCompleted.Terminal() || !StatusError.Terminal() {
		t.Error("completed and error are terminal")
	}
}
