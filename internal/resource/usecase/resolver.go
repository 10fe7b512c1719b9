package usecase

import (
	"context"
	"strings"

	resourceDomain "github.com/allisson/cardguard/internal/resource/domain"
)

// IdentityResolver treats every non-blank name as a resource whose path is the name.
type IdentityResolver struct{}

// NewIdentityResolver creates an IdentityResolver.
func NewIdentityResolver() *IdentityResolver {
	return &IdentityResolver{}
}

// Resolve returns one descriptor per distinct non-blank name.
func (IdentityResolver) Resolve(ctx context.Context, names []string) ([]resourceDomain.Resource, error) {
	resources := make([]resourceDomain.Resource, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		resources = append(resources, resourceDomain.Resource{Name: name, Path: name})
	}
	return resources, nil
}

// StaticResolver resolves names against a fixed catalogue. Unknown names are skipped.
type StaticResolver struct {
	catalog map[string]resourceDomain.Resource
}

// NewStaticResolver creates a resolver over catalog.
func NewStaticResolver(catalog []resourceDomain.Resource) *StaticResolver {
	index := make(map[string]resourceDomain.Resource, len(catalog))
	for _, resource := range catalog {
		index[resource.Name] = resource
	}
	return &StaticResolver{catalog: index}
}

// Resolve returns the catalogued descriptors for names, in request order.
func (s *StaticResolver) Resolve(ctx context.Context, names []string) ([]resourceDomain.Resource, error) {
	resources := make([]resourceDomain.Resource, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		resource, ok := s.catalog[strings.TrimSpace(name)]
		if !ok {
			continue
		}
		if _, dup := seen[resource.Name]; dup {
			continue
		}
		seen[resource.Name] = struct{}{}
		resources = append(resources, resource)
	}
	return resources, nil
}
