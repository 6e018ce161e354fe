package imagecache

import (
	"fmt"
	"regexp"
	"strings"
)

// cardIDRe pulls the card password and real extension out of a CDN URL,
// e.g. /ygopro/pics/89631139.jpg!thumb2.
var cardIDRe = regexp.MustCompile(`/(\d+)\.(jpg|webp|png)`)

// CacheKey derives a stable, human-inspectable file name from an asset URL:
// "<language>_<id>_<size>.<ext>". Two URLs denoting the same logical asset
// at the same variant map to the same key, e.g.
//
//	https://cdn.233.momobako.com/ygopro/pics/89631139.jpg!thumb2
//	-> ygopro_89631139_thumb2.jpg
func CacheKey(rawURL string) string {
	language := "unknown"
	switch {
	case strings.Contains(rawURL, "/ygopro/pics/"):
		language = "ygopro"
	case strings.Contains(rawURL, "/ygoimg/sc/"):
		language = "sc"
	case strings.Contains(rawURL, "/ygoimg/jp/"):
		language = "jp"
	case strings.Contains(rawURL, "/ygoimg/en/"):
		language = "en"
	}

	cardID := "0"
	ext := "jpg"
	if m := cardIDRe.FindStringSubmatch(rawURL); m != nil {
		cardID = m[1]
		ext = m[2]
	}

	size := "full"
	switch {
	case strings.Contains(rawURL, "!/format/webp") || strings.Contains(rawURL, "/fw/"):
		// HD WebP rendition, served through the image proxy.
		size = "hd_webp"
		ext = "webp"
	case strings.HasSuffix(rawURL, "!half"):
		size = "half"
	case strings.HasSuffix(rawURL, "!thumb2"):
		size = "thumb2"
	case strings.HasSuffix(rawURL, "!thumb"):
		size = "thumb"
	case strings.HasSuffix(rawURL, "!art"):
		size = "art"
	}

	return fmt.Sprintf("%s_%s_%s.%s", language, cardID, size, ext)
}
