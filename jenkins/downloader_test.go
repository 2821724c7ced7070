package jenkins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
	"github.com/buildbeaver/jenkins2gha/common/logger"
)

// fakeCurl writes a script standing in for curl that records its arguments and writes the file named
// by -o, then exits with exitCode.
func fakeCurl(t *testing.T, exitCode string) (curlPath string, argsPath string) {
	if runtime.GOOS == "windows" {
		t.Skip("fake curl is a shell script")
	}
	dir := t.TempDir()
	curlPath = filepath.Join(dir, "curl")
	argsPath = filepath.Join(dir, "args")
	script := `#!/bin/sh
printf '%s\n' "$@" > "` + argsPath + `"
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; shift; fi
  shift
done
echo "<project/>" > "$out"
exit ` + exitCode + `
`
	require.NoError(t, os.WriteFile(curlPath, []byte(script), 0755))
	return curlPath, argsPath
}

func TestCurlDownloader(t *testing.T) {
	curlPath, argsPath := fakeCurl(t, "0")
	dest := filepath.Join(t.TempDir(), "app_config.xml")
	downloader := NewCurlDownloader(curlPath, Credentials{User: "admin", APIToken: "s3cret"}, logger.NoOpLogFactory)

	err := downloader.Download(context.Background(), "http://localhost:8085/build/job/app/config.xml", dest)
	require.NoError(t, err)

	args, err := os.ReadFile(argsPath)
	require.NoError(t, err)
	require.Equal(t, "-u\nadmin:s3cret\nhttp://localhost:8085/build/job/app/config.xml\n-o\n"+dest+"\n", string(args))
	_, err = os.Stat(dest)
	require.NoError(t, err)
}

func TestCurlDownloaderFailure(t *testing.T) {
	curlPath, _ := fakeCurl(t, "22")
	downloader := NewCurlDownloader(curlPath, Credentials{}, logger.NoOpLogFactory)

	err := downloader.Download(context.Background(), "http://localhost:8085/build/job/app/config.xml",
		filepath.Join(t.TempDir(), "app_config.xml"))
	require.Error(t, err)
	gErr := gerror.ToDownloadFailed(err)
	require.NotNil(t, gErr)
	require.Equal(t, 22, gErr.Details()[gerror.DetailStatus].Value())
}

func TestCurlDownloaderCommandLineMasksToken(t *testing.T) {
	downloader := NewCurlDownloader("", Credentials{User: "admin", APIToken: "s3cret"}, logger.NoOpLogFactory)
	commandLine := downloader.CommandLine("http://localhost:8085/build/job/my app/config.xml", "out dir/app_config.xml")
	require.Equal(t, "curl -u 'admin:****' 'http://localhost:8085/build/job/my app/config.xml' -o 'out dir/app_config.xml'", commandLine)
	require.NotContains(t, commandLine, "s3cret")
}

func TestHTTPDownloader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/job/app/config.xml" {
			w.Write([]byte("<project><name>app</name></project>"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, ClientConfig{})
	downloader := NewHTTPDownloader(client, logger.NoOpLogFactory)
	dir := t.TempDir()

	dest := filepath.Join(dir, "app_config.xml")
	require.NoError(t, downloader.Download(context.Background(), client.JobConfigURL("app"), dest))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "<project><name>app</name></project>", string(data))

	missing := filepath.Join(dir, "missing_config.xml")
	err = downloader.Download(context.Background(), client.JobConfigURL("missing"), missing)
	require.True(t, gerror.IsDownloadFailed(err))
	_, err = os.Stat(missing)
	require.True(t, os.IsNotExist(err))
}
