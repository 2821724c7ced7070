package jenkins

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/alessio/shellescape"
	pkgerrors "github.com/pkg/errors"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
	"github.com/buildbeaver/jenkins2gha/common/logger"
)

// DownloaderType names a Downloader implementation.
type DownloaderType string

const (
	DownloaderTypeHTTP DownloaderType = "http"
	DownloaderTypeCurl DownloaderType = "curl"
)

const maskedToken = "****"

// Downloader saves the document at a URL to a local file.
type Downloader interface {
	Download(ctx context.Context, jobURL string, destPath string) error
}

// HTTPDownloader downloads using the Jenkins REST API client.
type HTTPDownloader struct {
	client *Client
	log    logger.Log
}

func NewHTTPDownloader(client *Client, logFactory logger.LogFactory) *HTTPDownloader {
	return &HTTPDownloader{
		client: client,
		log:    logFactory("HTTPDownloader"),
	}
}

// Download saves the response body to destPath. Nothing is written unless the server responds
// successfully, and a partially written file is removed.
func (d *HTTPDownloader) Download(ctx context.Context, jobURL string, destPath string) error {
	body, err := d.client.GetStream(ctx, jobURL)
	if err != nil {
		return err
	}
	defer body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "error creating %q", destPath)
	}
	n, err := io.Copy(file, body)
	closeErr := file.Close()
	if err != nil {
		os.Remove(destPath)
		return gerror.NewErrDownloadFailed("error reading response body", err).Detail(gerror.DetailURL, jobURL)
	}
	if closeErr != nil {
		return pkgerrors.Wrapf(closeErr, "error writing %q", destPath)
	}
	d.log.Debugf("Saved %d bytes from %s to %s", n, jobURL, destPath)
	return nil
}

// CurlDownloader downloads by running curl, and judges success by curl's exit status alone.
type CurlDownloader struct {
	curlPath    string
	credentials Credentials
	log         logger.Log
}

func NewCurlDownloader(curlPath string, credentials Credentials, logFactory logger.LogFactory) *CurlDownloader {
	if curlPath == "" {
		curlPath = "curl"
	}
	return &CurlDownloader{
		curlPath:    curlPath,
		credentials: credentials,
		log:         logFactory("CurlDownloader"),
	}
}

// CommandLine returns the shell-quoted command used to download jobURL, with the API token masked.
func (d *CurlDownloader) CommandLine(jobURL string, destPath string) string {
	return shellescape.QuoteCommand(append([]string{d.curlPath}, d.args(jobURL, destPath, true)...))
}

func (d *CurlDownloader) Download(ctx context.Context, jobURL string, destPath string) error {
	d.log.Debugf("Running %s", d.CommandLine(jobURL, destPath))
	cmd := exec.CommandContext(ctx, d.curlPath, d.args(jobURL, destPath, false)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		d.log.Debugf("curl output: %s", output)
		downloadErr := gerror.NewErrDownloadFailed("curl failed", err).Detail(gerror.DetailURL, jobURL)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			downloadErr = downloadErr.Detail(gerror.DetailStatus, exitErr.ExitCode())
		}
		return downloadErr
	}
	return nil
}

func (d *CurlDownloader) args(jobURL string, destPath string, mask bool) []string {
	var args []string
	if d.credentials.IsSet() {
		token := d.credentials.APIToken
		if mask {
			token = maskedToken
		}
		args = append(args, "-u", d.credentials.User+":"+token)
	}
	return append(args, jobURL, "-o", destPath)
}
