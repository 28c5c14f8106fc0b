package event_service

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	instagramPath = regexp.MustCompile(`(?i)^/(p|reel|tv)/([^/]+)/?`)
	imageExt      = regexp.MustCompile(`\.(png|jpe?g|webp|gif|avif)$`)
)

// NormalizeImageURL принимает пустую строку, ссылку на пост/рилс Instagram
// (приводится к permalink) или прямую ссылку на картинку.
func NormalizeImageURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	if permalink, ok := instagramPermalink(raw); ok {
		return permalink, true
	}
	if isDirectImage(raw) {
		return raw, true
	}
	return "", false
}

func instagramPermalink(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "instagram.com" && host != "instagr.am" {
		return "", false
	}
	m := instagramPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return "https://www.instagram.com/" + strings.ToLower(m[1]) + "/" + m[2] + "/", true
}

func isDirectImage(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return imageExt.MatchString(strings.ToLower(u.Path))
}
