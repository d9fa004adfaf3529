package photo

import (
	"net/url"
	"strings"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
)

// BuildQueryURL turns a keyword into a random-photo query against the photo
// source, e.g. https://source.unsplash.com/800x600/?busan%20tower.
func BuildQueryURL(baseURL, keyword string) string {
	if baseURL == "" {
		baseURL = constants.PhotoSource.BaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + constants.PhotoSource.Size + "/?" + escapeComponent(keyword)
}

// escapeComponent percent-encodes like a URI component: spaces become %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
