package basket

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/basket/date"
	"github.com/rs/zerolog"
)

// contains http utils to deal with the remote price service

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// get from disk
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Str("method", resp.Request.Method).
		Str("host", resp.Request.URL.Host).
		Str("path", resp.Request.URL.Path).
		Str("status", resp.Status).
		Msg("fetched")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		c.log.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client caching every response on disk with daily expiry.
func daily(log zerolog.Logger) *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{base: http.DefaultTransport, log: log}
	return client
}

// httpStatusError is a non-2xx response from the remote price service.
// Callers inspect the code to tell "no such resource" from an outage.
type httpStatusError struct {
	code   int
	status string
	host   string
	path   string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("cannot http GET %v/%v: %v", e.host, e.path, e.status)
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return &httpStatusError{
			code:   resp.StatusCode,
			status: resp.Status,
			host:   resp.Request.URL.Host,
			path:   resp.Request.URL.Path,
		}
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
