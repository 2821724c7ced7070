package jenkins

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildbeaver/jenkins2gha/common/logger"
	"github.com/buildbeaver/jenkins2gha/common/models"
)

func newFakeJenkins(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/build/job/api/config.xml":
			w.Write([]byte("<project><name>api</name></project>"))
		case "/build/job/team/job/web/config.xml":
			w.Write([]byte("<project><name>web</name></project>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchAll(t *testing.T) {
	server := newFakeJenkins(t)
	client := newTestClient(t, server.URL+"/build", ClientConfig{})
	out := &bytes.Buffer{}
	fetcher := NewFetcher(client, NewHTTPDownloader(client, logger.NoOpLogFactory), out, logger.NoOpLogFactory)
	outputDir := filepath.Join(t.TempDir(), ".github", "workflows")

	listing := &models.JobListing{Jobs: []models.JobDescriptor{
		{Name: "api"},
		{Name: ""},
		{Name: "gone"},
		{Name: "team/web"},
	}}
	summary, err := fetcher.FetchAll(context.Background(), listing, outputDir)
	require.NoError(t, err)
	require.Equal(t, []string{"api", "team/web"}, summary.Downloaded)
	require.Equal(t, []string{"gone"}, summary.Failed)
	require.Equal(t, 1, summary.Skipped)

	data, err := os.ReadFile(filepath.Join(outputDir, "api_config.xml"))
	require.NoError(t, err)
	require.Equal(t, "<project><name>api</name></project>", string(data))
	_, err = os.Stat(filepath.Join(outputDir, "team", "web_config.xml"))
	require.NoError(t, err)

	apiPath := ConfigFilePath(outputDir, "api")
	webPath := ConfigFilePath(outputDir, "team/web")
	require.Equal(t,
		"Downloading config for job: api from "+server.URL+"/build/job/api/config.xml\n"+
			"Successfully downloaded "+apiPath+"\n"+
			"Downloading config for job: gone from "+server.URL+"/build/job/gone/config.xml\n"+
			"Error downloading config for job: gone\n"+
			"Downloading config for job: team/web from "+server.URL+"/build/job/team/job/web/config.xml\n"+
			"Successfully downloaded "+webPath+"\n",
		out.String())
}

type recordingDownloader struct {
	urls []string
}

func (d *recordingDownloader) Download(ctx context.Context, jobURL string, destPath string) error {
	d.urls = append(d.urls, jobURL)
	return os.WriteFile(destPath, []byte("<project/>"), 0644)
}

func TestFetchAllEmptyListing(t *testing.T) {
	client := newTestClient(t, DefaultServerURL, ClientConfig{})
	downloader := &recordingDownloader{}
	fetcher := NewFetcher(client, downloader, &bytes.Buffer{}, logger.NoOpLogFactory)
	outputDir := filepath.Join(t.TempDir(), "configs")

	summary, err := fetcher.FetchAll(context.Background(), &models.JobListing{}, outputDir)
	require.NoError(t, err)
	require.Empty(t, summary.Downloaded)
	require.Empty(t, downloader.urls)

	info, err := os.Stat(outputDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestFetchAllCancelled(t *testing.T) {
	client := newTestClient(t, DefaultServerURL, ClientConfig{})
	downloader := &recordingDownloader{}
	fetcher := NewFetcher(client, downloader, &bytes.Buffer{}, logger.NoOpLogFactory)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.FetchAll(ctx, &models.JobListing{Jobs: []models.JobDescriptor{{Name: "api"}}}, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, downloader.urls)
}

func TestFetchAllKeepsJobNamesVerbatim(t *testing.T) {
	client := newTestClient(t, DefaultServerURL, ClientConfig{})
	downloader := &recordingDownloader{}
	fetcher := NewFetcher(client, downloader, &bytes.Buffer{}, logger.NoOpLogFactory)
	outputDir := t.TempDir()

	listing := &models.JobListing{Jobs: []models.JobDescriptor{{Name: "my job"}, {Name: "a+b"}}}
	summary, err := fetcher.FetchAll(context.Background(), listing, outputDir)
	require.NoError(t, err)
	require.Equal(t, []string{"my job", "a+b"}, summary.Downloaded)
	require.Equal(t, []string{
		DefaultServerURL + "/job/my%20job/config.xml",
		DefaultServerURL + "/job/a+b/config.xml",
	}, downloader.urls)

	require.Equal(t, filepath.Join(outputDir, "my job_config.xml"), ConfigFilePath(outputDir, "my job"))
	_, err = os.Stat(filepath.Join(outputDir, "my job_config.xml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outputDir, "a+b_config.xml"))
	require.NoError(t, err)
}
