package eodhd

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/attribution/date"
)

// getJSON performs an HTTP GET through the client's daily-caching transport
// and unmarshals the JSON response into data.
func (c *Client) getJSON(addr string, data any) error {
	if c.http == nil {
		c.http = &http.Client{Transport: &dailyCache{base: http.DefaultTransport}}
	}
	resp, err := c.http.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, data)
}

// dailyCache stores successful HTTP responses on disk until the end of the
// day. EODHD serves end-of-day data, so within a day repeated requests for
// the same URL return identical payloads.
type dailyCache struct {
	base http.RoundTripper
}

func (c *dailyCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := c.file(req)
	if content, err := os.ReadFile(file); err == nil {
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	// DumpResponse leaves the body readable for the caller.
	if content, err := httputil.DumpResponse(resp, true); err == nil {
		if err := os.WriteFile(file, content, 0644); err != nil {
			log.Printf("cache write err (ignored): %v", err)
		}
	}
	return resp, nil
}

// file is the on-disk location of a request's cached response. The key
// embeds today's date, so entries expire at midnight.
func (c *dailyCache) file(req *http.Request) string {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL)
	return filepath.Join(os.TempDir(), fmt.Sprintf("%x", sha1.Sum([]byte(key))))
}
