package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"mcpkg/internal/errkind"
	"mcpkg/internal/mc"
)

// Local reads mods from a directory of pre-placed jar files, each paired
// with a sidecar mpcodec mod_metadata blob (same base name, .mpmeta
// extension). It has no network dependency, so IsOnline is always true.
type Local struct {
	dir string
}

// NewLocal builds a Local backend rooted at dir.
func NewLocal(dir string) *Local { return &Local{dir: dir} }

// Init ensures the backing directory exists.
func (l *Local) Init(ctx context.Context) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return errkind.Wrap(errkind.IO, err, "create local mod directory")
	}
	return nil
}

// Close is a no-op: Local holds no resource to release.
func (l *Local) Close() error { return nil }

// IsOnline is always true: there is no remote endpoint to be unreachable.
func (l *Local) IsOnline(ctx context.Context) bool { return true }

// ResolveDownloadURL reads mod's sidecar metadata directly and fills in a
// file:// download URL if the sidecar didn't already carry one.
func (l *Local) ResolveDownloadURL(ctx context.Context, mod mc.ModRef) (mc.ModMetadata, error) {
	if mod.Slug == "" {
		return mc.ModMetadata{}, errkind.New(errkind.InvalidArgument, "mod ref has no slug")
	}
	buf, err := os.ReadFile(filepath.Join(l.dir, mod.Slug+".mpmeta"))
	if err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.NotFound, err, "read local sidecar metadata")
	}
	meta, err := mc.UnpackModMetadata(buf)
	if err != nil {
		return mc.ModMetadata{}, err
	}
	if meta.DownloadURL == "" {
		meta.DownloadURL = "file://" + filepath.Join(l.dir, mod.Slug+".jar")
	}
	return meta, nil
}

// FetchPackagesIndex reads every sidecar metadata file in the directory.
func (l *Local) FetchPackagesIndex(ctx context.Context) ([]mc.ModMetadata, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, errkind.Wrap(errkind.IO, err, "list local mod directory")
	}
	out := make([]mc.ModMetadata, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".mpmeta") {
			continue
		}
		buf, err := os.ReadFile(filepath.Join(l.dir, e.Name()))
		if err != nil {
			return nil, errkind.Wrap(errkind.IO, err, "read local sidecar metadata")
		}
		mod, err := mc.UnpackModMetadata(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, mod)
	}
	return out, nil
}
