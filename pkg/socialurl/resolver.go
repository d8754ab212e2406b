// Package socialurl turns a platform name and username pair into a
// canonical profile URL.
//
// Every function in this package is pure: there is no package state that
// changes after init, so callers may use it from any number of goroutines.
package socialurl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxUsernameLength is the longest accepted username, counted in runes
// after surrounding whitespace is removed.
const MaxUsernameLength = 100

// Result is the outcome of resolving one platform/username pair.
type Result struct {
	Platform   string
	Username   string
	ProfileURL string
	IsValid    bool
}

// Entry is one platform/username pair for batch resolution.
type Entry struct {
	Platform string
	Username string
}

// platformPrefixes maps a normalized platform key to its profile URL prefix.
// Never written after init.
var platformPrefixes = map[string]string{
	// Major social media
	"instagram": "https://instagram.com/",
	"twitter":   "https://twitter.com/",
	"x":         "https://x.com/",
	"facebook":  "https://facebook.com/",
	"linkedin":  "https://linkedin.com/in/",
	"youtube":   "https://youtube.com/@",
	"tiktok":    "https://tiktok.com/@",
	"snapchat":  "https://snapchat.com/add/",

	// Professional networks
	"github":   "https://github.com/",
	"behance":  "https://behance.net/",
	"dribbble": "https://dribbble.com/",
	"medium":   "https://medium.com/@",

	// Messaging
	"discord":  "https://discord.com/users/",
	"telegram": "https://t.me/",
	"whatsapp": "https://wa.me/",
	"skype":    "skype:",

	// Streaming and media
	"twitch":    "https://twitch.tv/",
	"spotify":   "https://open.spotify.com/user/",
	"reddit":    "https://reddit.com/u/",
	"pinterest": "https://pinterest.com/",

	// Other
	"tumblr":     "https://tumblr.com/blog/",
	"flickr":     "https://flickr.com/people/",
	"vimeo":      "https://vimeo.com/",
	"soundcloud": "https://soundcloud.com/",
	"clubhouse":  "https://clubhouse.com/@",
}

// sortedPlatforms holds the table keys in lexicographic order.
var sortedPlatforms = func() []string {
	keys := make([]string, 0, len(platformPrefixes))
	for k := range platformPrefixes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}()

// NormalizePlatform lowercases the platform name and removes all white space,
// including white space inside the name ("Linked In" becomes "linkedin").
// An empty input yields the empty key.
func NormalizePlatform(platform string) string {
	if platform == "" {
		return ""
	}
	return strings.Join(strings.FieldsFunc(strings.ToLower(platform), isSpace), "")
}

// isSpace matches the white space set of browser input trimming: Unicode
// white space plus the byte order mark U+FEFF, but not NEL (U+0085).
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// CleanUsername trims surrounding white space and strips any number of
// leading '@' characters. The result is stable: cleaning it again is a no-op.
func CleanUsername(username string) string {
	cleaned := strings.TrimLeftFunc(username, func(r rune) bool {
		return r == '@' || isSpace(r)
	})
	return strings.TrimRightFunc(cleaned, isSpace)
}

// ValidateUsername reports whether the trimmed username holds between 1 and
// MaxUsernameLength runes.
func ValidateUsername(username string) bool {
	n := utf8.RuneCountInString(strings.TrimFunc(username, isSpace))
	return n > 0 && n <= MaxUsernameLength
}

// Prefix returns the profile URL prefix for platform, if it is supported.
func Prefix(platform string) (string, bool) {
	prefix, ok := platformPrefixes[NormalizePlatform(platform)]
	return prefix, ok
}

// Generate resolves a platform and username into a profile URL.
//
// It never fails. When the username is unusable the original username is
// echoed in both Username and ProfileURL; when the platform is unknown the
// cleaned username is. Either way IsValid is false and callers should render
// ProfileURL as plain text rather than a link.
func Generate(platform, username string) Result {
	cleaned := CleanUsername(username)

	if !ValidateUsername(cleaned) {
		return Result{
			Platform:   platform,
			Username:   username,
			ProfileURL: username,
			IsValid:    false,
		}
	}

	prefix, ok := Prefix(platform)
	if !ok {
		return Result{
			Platform:   platform,
			Username:   cleaned,
			ProfileURL: cleaned,
			IsValid:    false,
		}
	}

	return Result{
		Platform:   platform,
		Username:   cleaned,
		ProfileURL: prefix + cleaned,
		IsValid:    true,
	}
}

// GenerateMultiple resolves entries in order, skipping any with an empty
// platform or username. The returned slice is never nil.
func GenerateMultiple(entries []Entry) []Result {
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		if e.Platform == "" || e.Username == "" {
			continue
		}
		results = append(results, Generate(e.Platform, e.Username))
	}
	return results
}

// SupportedPlatforms returns the supported platform keys in sorted order.
// The caller owns the returned slice.
func SupportedPlatforms() []string {
	return slices.Clone(sortedPlatforms)
}

// IsPlatformSupported reports whether the normalized platform has a URL prefix.
func IsPlatformSupported(platform string) bool {
	_, ok := Prefix(platform)
	return ok
}
