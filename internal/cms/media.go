package cms

import "strings"

// ResolveMediaURL turns an upload path into an absolute URL. Empty paths stay
// empty, already-absolute URLs pass through unchanged, and relative paths are
// prefixed with the media host.
func ResolveMediaURL(mediaHost, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	return mediaHost + path
}

// MediaURL resolves path against the client's configured media host.
func (c *Client) MediaURL(path string) string {
	return ResolveMediaURL(c.mediaURL, path)
}
