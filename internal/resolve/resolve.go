// Package resolve walks a mod's declared dependency edges into a flat,
// dependency-first install order. It is a single deterministic pass, not a
// version-constraint solver: choosing among multiple versions that satisfy
// a constraint is left to the caller.
package resolve

import (
	"context"
	"fmt"

	"mcpkg/internal/errkind"
	"mcpkg/internal/mc"
	"mcpkg/internal/registry"
)

type depKey struct {
	provider mc.ProviderID
	slug     string
}

// Resolve fetches root's metadata via reg's current provider, then
// recursively resolves its declared Dependencies, de-duplicating by
// (ProviderID, Slug) and detecting cycles. The returned slice is ordered
// dependency-first: every entry appears only after everything it depends
// on.
func Resolve(ctx context.Context, reg *registry.Mc, root mc.ModRef) ([]mc.ModMetadata, error) {
	var out []mc.ModMetadata
	visited := make(map[depKey]bool)
	onStack := make(map[depKey]bool)

	var visit func(ref mc.ModRef) error
	visit = func(ref mc.ModRef) error {
		key := depKey{provider: ref.ProviderID, slug: ref.Slug}
		if onStack[key] {
			return errkind.New(errkind.Conflict, fmt.Sprintf("dependency cycle detected at %q", ref.Slug))
		}
		if visited[key] {
			return nil
		}
		onStack[key] = true
		defer delete(onStack, key)

		mod, err := fetchMetadata(ctx, reg, ref)
		if err != nil {
			return err
		}
		for _, dep := range mod.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		visited[key] = true
		out = append(out, mod)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchMetadata finds ref's listing entry for its display fields, then
// resolves the concrete artifact (digest, file name, download URL) for that
// exact mod via Ops.ResolveDownloadURL, which does its own version-specific
// lookup rather than reusing the bulk index's zeroed-out fields.
func fetchMetadata(ctx context.Context, reg *registry.Mc, ref mc.ModRef) (mc.ModMetadata, error) {
	provider, ok := reg.CurrentProvider()
	if !ok {
		return mc.ModMetadata{}, errkind.New(errkind.InvalidState, "no current provider selected")
	}
	if provider.Ops == nil {
		return mc.ModMetadata{}, errkind.New(errkind.Unsupported, "current provider has no backend attached")
	}
	index, err := provider.Ops.FetchPackagesIndex(ctx)
	if err != nil {
		return mc.ModMetadata{}, err
	}
	var mod mc.ModMetadata
	found := false
	for _, candidate := range index {
		if candidate.Slug == ref.Slug {
			mod = candidate
			found = true
			break
		}
	}
	if !found {
		return mc.ModMetadata{}, errkind.New(errkind.NotFound, fmt.Sprintf("mod %q not found in provider index", ref.Slug))
	}

	artifact, err := provider.Ops.ResolveDownloadURL(ctx, ref)
	if err != nil {
		return mc.ModMetadata{}, err
	}
	mod.DownloadURL = artifact.DownloadURL
	mod.Digest = artifact.Digest
	mod.FileName = artifact.FileName
	if artifact.ModVersion != "" {
		mod.ModVersion = artifact.ModVersion
	}
	return mod, nil
}
