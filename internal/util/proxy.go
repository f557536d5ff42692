// Package util holds small helpers shared by the HTTP-speaking
// collaborators.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the Transport.Proxy function for outbound
// clients. Explicit proxy URLs take precedence over the standard
// HTTP_PROXY/HTTPS_PROXY environment variables.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
