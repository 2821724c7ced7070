package jenkins

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/buildbeaver/jenkins2gha/common/gerror"
	"github.com/buildbeaver/jenkins2gha/common/logger"
	"github.com/buildbeaver/jenkins2gha/common/models"
	"github.com/buildbeaver/jenkins2gha/common/util"
)

const (
	// DefaultServerURL is where the Jenkins instance the conversion scripts were written against listens.
	DefaultServerURL = "http://localhost:8085/build"
	// DefaultRetryMax disables retries; a failed download is reported and skipped.
	DefaultRetryMax = 0

	listingPath = "/api/json?tree=jobs[name,url,jobs[name,url,jobs[name,url]]]"

	// maxErrorBodyChars bounds how much of an error response body is included in an error message.
	maxErrorBodyChars = 200
)

type ClientConfig struct {
	ServerURL   string
	Credentials Credentials
	// Timeout applies to each request; zero means no timeout.
	Timeout  time.Duration
	RetryMax int
}

// Client is an HTTP client used to read job configuration from the Jenkins REST API.
type Client struct {
	serverURL       string
	retryableClient *retryablehttp.Client
	authenticator   Authenticator
	log             logger.Log
}

func NewClient(config ClientConfig, logFactory logger.LogFactory) (*Client, error) {
	log := logFactory("JenkinsClient")

	serverURL := strings.TrimRight(config.ServerURL, "/")
	uri, err := url.ParseRequestURI(serverURL)
	if err != nil || uri.Host == "" || (uri.Scheme != "http" && uri.Scheme != "https") {
		return nil, gerror.NewErrValidationFailed(fmt.Sprintf("invalid Jenkins server URL %q", config.ServerURL))
	}
	if config.RetryMax < 0 {
		return nil, gerror.NewErrValidationFailed("retry count must not be negative")
	}

	httpClient := &http.Client{Timeout: config.Timeout}
	retryableClient := retryablehttp.NewClient()
	retryableClient.RetryWaitMin = time.Millisecond * 100
	retryableClient.RetryWaitMax = time.Second * 5
	retryableClient.RetryMax = config.RetryMax
	retryableClient.Logger = NewLeveledLogger(log) // use adaptor to get log level support
	retryableClient.HTTPClient = httpClient
	// Hand the final response back rather than a generic "giving up" error so the status can be reported
	retryableClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	var authenticator Authenticator
	if config.Credentials.IsSet() {
		authenticator = NewBasicAuthenticator(config.Credentials)
	} else {
		log.Warn("No Jenkins credentials configured; requests will be made anonymously")
	}

	return &Client{
		serverURL:       serverURL,
		retryableClient: retryableClient,
		authenticator:   authenticator,
		log:             log,
	}, nil
}

// ServerURL returns the base URL of the Jenkins server, without a trailing slash.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// JobURL returns the URL of the named job. Slashes in the name separate folders.
func (c *Client) JobURL(jobName string) string {
	var b strings.Builder
	b.WriteString(c.serverURL)
	for _, part := range strings.Split(jobName, "/") {
		if part == "" {
			continue
		}
		b.WriteString("/job/")
		b.WriteString(url.PathEscape(part))
	}
	return b.String()
}

// JobConfigURL returns the URL of the named job's config.xml.
func (c *Client) JobConfigURL(jobName string) string {
	return c.JobURL(jobName) + "/config.xml"
}

// GetJobListing reads the list of jobs on the server from the JSON API, descending into folders.
func (c *Client) GetJobListing(ctx context.Context) (*models.JobListing, error) {
	body, err := c.GetStream(ctx, c.serverURL+listingPath)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading job listing")
	}
	return ParseJSONListing(data)
}

// GetStream performs an HTTP GET and returns the response body, which the caller must close.
// Any response other than 2xx is returned as a DownloadFailed error.
func (c *Client) GetStream(ctx context.Context, requestURL string) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequest("GET", requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error making request")
	}
	req = req.WithContext(ctx)
	if c.authenticator != nil {
		req.Header, err = c.authenticator.AuthenticateRequest(req.Header)
		if err != nil {
			return nil, errors.Wrap(err, "error authenticating request")
		}
	}
	res, err := c.retryableClient.Do(req)
	if err != nil {
		if res != nil && res.Body != nil {
			res.Body.Close()
		}
		return nil, gerror.NewErrDownloadFailed("error during request", err).Detail(gerror.DetailURL, requestURL)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		return nil, c.makeHTTPError(requestURL, res)
	}
	return res.Body, nil
}

// makeHTTPError returns a DownloadFailed error describing an unsuccessful response, including the
// start of the response body.
func (c *Client) makeHTTPError(requestURL string, res *http.Response) error {
	body, _ := ioutil.ReadAll(io.LimitReader(res.Body, maxErrorBodyChars*4))
	return gerror.NewErrDownloadFailed(
		fmt.Sprintf("error %d in HTTP response: %s", res.StatusCode, util.TruncateStringToMaxLength(string(body), maxErrorBodyChars)),
		nil,
	).Detail(gerror.DetailURL, requestURL).Detail(gerror.DetailStatus, res.StatusCode)
}
