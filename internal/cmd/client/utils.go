package client

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// apiURL returns the server base URL, MSGQ_HTTP or the local default.
func apiURL() string {
	if v := os.Getenv("MSGQ_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}

// getJSON issues a GET and prints the response body to out.
func getJSON(out io.Writer, path string, query url.Values) error {
	u := apiURL() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "status:", resp.Status)
	fmt.Fprintln(out, string(body))
	return nil
}
