package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const sessionHeader = "X-Session-Id"

var httpClient = &http.Client{Timeout: time.Minute}

// sessionRequest calls the session API and returns the response body.
// Responses other than 200 are returned as errors carrying the rpc-error.
func sessionRequest(ctx context.Context, method, path string, query url.Values, body string) (string, error) {
	u := strings.TrimSuffix(restAddr, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, strings.NewReader(body))
	if err != nil {
		return "", err
	}
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/xml")
	}
	rsp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer rsp.Body.Close()
	b, err := io.ReadAll(rsp.Body)
	if err != nil {
		return "", err
	}
	if rsp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %s", rsp.Status, string(b))
	}
	return string(b), nil
}

// readInput reads file, "-" being stdin.
func readInput(file string) (string, error) {
	if file == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(file)
	return string(b), err
}
