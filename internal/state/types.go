// Package state records how a project was generated in the .cruft.json
// file at the project root.
package state

import "github.com/christokur/cruft/internal/cookiecutter"

// FileName is the state file written at the project root.
const FileName = ".cruft.json"

// State is the content of .cruft.json. Field order is the on-disk key
// order.
type State struct {
	Template  string   `json:"template"`
	Commit    string   `json:"commit"`
	Checkout  *string  `json:"checkout"`
	Context   Context  `json:"context"`
	Directory *string  `json:"directory"`
	Skip      []string `json:"skip,omitempty"`
}

// Context nests the rendering context the way cookiecutter does.
type Context struct {
	Cookiecutter *cookiecutter.Context `json:"cookiecutter"`
}
