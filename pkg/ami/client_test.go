package ami

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a client pointed at a server answering with body and status.
func newTestClient(t *testing.T, status int, body []byte) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(server.Close)

	c := NewClient(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	c.endpoint = server.URL
	return c
}

func TestNewClient(t *testing.T) {
	c := NewClient()

	assert.Equal(t, CatalogURL, c.endpoint)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.NotNil(t, c.logger)

	hc := &http.Client{Timeout: time.Second}
	c = NewClient(WithHTTPClient(hc), WithHTTPClient(nil))
	assert.Same(t, hc, c.httpClient)
}

func TestClient_FindLatest_LaterDateWins(t *testing.T) {
	c := newTestClient(t, http.StatusOK, catalogBody(scenarioRows))

	id, err := c.FindLatest(context.Background(), Query{
		Region:       "us-east-1",
		ReleaseName:  "bionic",
		InstanceType: "hvm:ebs-ssd",
		Architecture: "amd64",
	})

	require.NoError(t, err)
	assert.Equal(t, "ami-222", id)
}

func TestClient_FindLatest_NoMatch(t *testing.T) {
	c := newTestClient(t, http.StatusOK, catalogBody(scenarioRows))

	id, err := c.FindLatest(context.Background(), Query{
		Region:       "us-east-1",
		ReleaseName:  "bionic",
		InstanceType: "hvm:ebs-ssd",
		Architecture: "arm64",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "arch=arm64")
	assert.Empty(t, id)
}

func TestClient_FindLatest_Errors(t *testing.T) {
	badLink := [][]string{
		{"us-east-1", "bionic", "18.04", "amd64", "hvm:ebs-ssd", "20200101", "ami-111", "hvm"},
	}

	tests := []struct {
		name    string
		status  int
		body    []byte
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: []byte("oops"), wantErr: ErrNetwork},
		{name: "not found", status: http.StatusNotFound, body: nil, wantErr: ErrNetwork},
		{name: "short body", status: http.StatusOK, body: []byte("{}"), wantErr: ErrMalformedPayload},
		{name: "not json", status: http.StatusOK, body: []byte("<html>maintenance</html>"), wantErr: ErrDecode},
		{name: "bad link", status: http.StatusOK, body: catalogBody(badLink), wantErr: ErrExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.status, tt.body)

			id, err := c.FindLatest(context.Background(), Query{Region: "us-east-1"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, id)
		})
	}
}

func TestClient_Fetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient()
	c.endpoint = url

	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_Fetch_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewClient()
	c.endpoint = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_List(t *testing.T) {
	rows := [][]string{
		scenarioRows[1],
		{"eu-west-1", "focal", "20.04", "amd64", "hvm:ebs-ssd", "20200401", `<a href="u">ami-333</a>`, "hvm"},
		scenarioRows[0],
	}
	c := newTestClient(t, http.StatusOK, catalogBody(rows))

	records, err := c.List(context.Background(), Query{Region: "us-east-1"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "20200101", records[0].PublishDate)
	assert.Equal(t, "20200301", records[1].PublishDate)

	records, err = c.List(context.Background(), Query{Region: "ap-south-1"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_Latest(t *testing.T) {
	c := newTestClient(t, http.StatusOK, catalogBody(scenarioRows))

	rec, err := c.Latest(context.Background(), Query{Region: "us-east-1"})
	require.NoError(t, err)
	assert.Equal(t, "20200301", rec.PublishDate)
	assert.Equal(t, `<a href="u">ami-222</a>`, rec.ImageMarkup)
}

func TestClient_ConcurrentLookups(t *testing.T) {
	c := newTestClient(t, http.StatusOK, catalogBody(scenarioRows))

	var wg sync.WaitGroup
	results := make([]string, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.FindLatest(context.Background(), Query{Region: "us-east-1"})
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "ami-222", results[i])
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "region=us-east-1", describe(Query{Region: "us-east-1"}))
	assert.Equal(t, "region=us-east-1 release=bionic arch=amd64",
		describe(Query{Region: "us-east-1", ReleaseName: "bionic", Architecture: "amd64"}))
}
