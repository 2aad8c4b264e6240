// Package checkout decides which git reference of a template to use.
//
// A checkout string is parsed into a Policy: the literal ":latest:" anywhere
// selects the highest version tag, a leading "branch:" names a branch, and
// anything else is used verbatim as a branch, tag or commit.
package checkout

import "strings"

const (
	// LatestMarker selects the highest version tag.
	LatestMarker = ":latest:"
	// BranchPrefix introduces a branch name.
	BranchPrefix = "branch:"
	// DefaultRef is used when no tag carries a usable version.
	DefaultRef = "HEAD"
)

// Kind identifies the variant of a Policy.
type Kind int

const (
	Explicit Kind = iota
	Branch
	Latest
)

func (k Kind) String() string {
	switch k {
	case Branch:
		return "branch"
	case Latest:
		return "latest"
	default:
		return "explicit"
	}
}

// Policy is a parsed checkout request.
type Policy struct {
	Kind Kind
	// Value is the ref for Explicit, the branch name for Branch and the
	// original input for Latest.
	Value string
}

// Parse parses a checkout string.
func Parse(s string) Policy {
	switch {
	case strings.Contains(s, LatestMarker):
		return Policy{Kind: Latest, Value: s}
	case strings.HasPrefix(s, BranchPrefix):
		return Policy{Kind: Branch, Value: strings.TrimPrefix(s, BranchPrefix)}
	default:
		return Policy{Kind: Explicit, Value: s}
	}
}

// NeedsTags reports whether resolving p requires the repository's tags.
func (p Policy) NeedsTags() bool {
	return p.Kind == Latest
}

// Resolve selects the concrete ref for p. tags are only consulted for Latest.
func Resolve(p Policy, tags []string) string {
	if p.Kind == Latest {
		return LatestTag(tags)
	}
	return p.Value
}

// Recorded returns the checkout value to persist in the state record. The
// symbolic markers are consumed: Latest and Branch record the concrete ref
// they resolved to, Explicit records the input exactly as given.
func Recorded(p Policy, resolved string) string {
	if p.Kind == Explicit {
		return p.Value
	}
	return resolved
}
