// Package ipfs resolves content hashes to HTTP gateway URLs.
package ipfs

import "strings"

// DownloadURL returns the gateway URL for hash under base.
// Exactly one slash separates the two parts regardless of how base and hash
// are written. An empty hash yields "" since there is nothing to fetch.
func DownloadURL(base, hash string) string {
	hash = strings.TrimLeft(hash, "/")
	if hash == "" {
		return ""
	}
	base = strings.TrimRight(base, "/")
	if base == "" {
		return hash
	}
	return base + "/" + hash
}
