package checkout

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// ZeroVersion is the sentinel for tags that carry no usable version.
const ZeroVersion = "0.0.0"

var zero = version.Must(version.NewVersion(ZeroVersion))

// Candidate is a tag paired with the version parsed from it.
type Candidate struct {
	Name string
	// Raw is the tag with every character other than digits and dots removed.
	Raw string
	// Version is the normalized version, ZeroVersion when Raw does not parse.
	Version string
}

// ParseCandidate strips non-numeric characters from tag and parses the rest
// as a dotted version of any length. "v1.2" yields 1.2, "release-2024.01.15"
// yields 2024.1.15, "v2.0.0-rc.1" yields 2.0.0.1 and "nightly" yields the
// sentinel.
func ParseCandidate(tag string) Candidate {
	var b strings.Builder
	for _, r := range tag {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	raw := b.String()
	return Candidate{Name: tag, Raw: raw, Version: normalize(raw)}
}

func normalize(raw string) string {
	trimmed := strings.Trim(raw, ".")
	if trimmed == "" {
		return ZeroVersion
	}
	parts := strings.Split(trimmed, ".")
	for i, p := range parts {
		if p == "" {
			return ZeroVersion
		}
		p = strings.TrimLeft(p, "0")
		if p == "" {
			p = "0"
		}
		parts[i] = p
	}
	v := strings.Join(parts, ".")
	if _, err := version.NewVersion(v); err != nil {
		return ZeroVersion
	}
	return v
}

func parse(v string) *version.Version {
	parsed, err := version.NewVersion(v)
	if err != nil {
		return zero
	}
	return parsed
}

// Compare compares two normalized versions, returning -1, 0 or +1. Missing
// trailing components count as zero, so 1.2 equals 1.2.0.
func Compare(a, b string) int {
	return parse(a).Compare(parse(b))
}

// LatestTag picks the tag with the highest version. The first tag, in the
// order given, to reach the maximum wins ties. The first tag whose name
// contains the winner's digits is returned, falling back to the winning tag
// itself when its digits were interleaved with other characters. When no tag
// exceeds ZeroVersion, DefaultRef is returned.
func LatestTag(tags []string) string {
	best := Candidate{Version: ZeroVersion}
	for _, tag := range tags {
		c := ParseCandidate(tag)
		if Compare(c.Version, best.Version) > 0 {
			best = c
		}
	}
	if Compare(best.Version, ZeroVersion) == 0 {
		return DefaultRef
	}
	for _, tag := range tags {
		if strings.Contains(tag, best.Raw) {
			return tag
		}
	}
	return best.Name
}
