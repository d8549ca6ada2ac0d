package uploads

import (
	"path"
	"regexp"
	"strings"
)

// DefaultExtension is used when the selected file name carries no extension.
const DefaultExtension = "png"

var (
	separators = regexp.MustCompile(`[\s_]+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	hyphens    = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases s, turns whitespace and underscores into hyphens, and
// strips everything else that is not a letter, digit, or hyphen.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = separators.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ObjectName derives the stored name of an image: {hint}-{id}.{ext}.
// The same hint and id always produce the same name, so a retried save
// overwrites the object of the failed attempt.
func ObjectName(hint, id, filename string) string {
	prefix := Slugify(hint)
	if prefix == "" {
		prefix = "image"
	}
	return prefix + "-" + strings.ToLower(id) + "." + Extension(filename)
}

// Extension returns the lowercase extension of filename without the dot,
// or DefaultExtension.
func Extension(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	ext = disallowed.ReplaceAllString(ext, "")
	if ext == "" {
		return DefaultExtension
	}
	return ext
}
