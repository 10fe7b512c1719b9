// Package domain defines protected resources and the locked set.
package domain

import (
	"strings"
	"time"

	"github.com/allisson/cardguard/internal/errors"
)

// ErrBlankResourceName indicates a resource without a usable name.
var ErrBlankResourceName = errors.Wrap(errors.ErrInvalidInput, "resource name must not be blank")

// Resource describes a protected entity. Name is the key of the locked set; Path is what
// an enforcement layer acts upon.
type Resource struct {
	Name string
	Path string
}

// LockedResource is a member of the locked set.
type LockedResource struct {
	Name     string
	Path     string
	LockedAt time.Time
}

// ParseCatalog parses a "name=path,name=path" list. Entries without "=" map the name to
// itself, blank entries are ignored and a repeated name keeps its last path.
func ParseCatalog(s string) ([]Resource, error) {
	var catalog []Resource
	index := make(map[string]int)

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		name, path, found := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		path = strings.TrimSpace(path)
		if name == "" {
			return nil, errors.Wrapf(ErrBlankResourceName, "invalid catalog entry %q", item)
		}
		if !found || path == "" {
			path = name
		}

		if i, ok := index[name]; ok {
			catalog[i].Path = path
			continue
		}
		index[name] = len(catalog)
		catalog = append(catalog, Resource{Name: name, Path: path})
	}
	return catalog, nil
}
