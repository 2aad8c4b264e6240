// Package source locates template repositories and drives git against them.
package source
