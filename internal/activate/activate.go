// Package activate places resolved mods into a target Minecraft
// installation's mods directory and records what was placed in a manifest,
// for a later `mcpkg list`/`mcpkg remove` to consult. Directory layout
// beyond targetDir/mods/ is out of scope here.
package activate

import (
	"context"
	"path/filepath"

	"mcpkg/internal/download"
	"mcpkg/internal/errkind"
	"mcpkg/internal/mc"
	"mcpkg/internal/registry"
)

// ActivatedEntry describes one mod placed into targetDir/mods/.
type ActivatedEntry struct {
	Slug       string
	ModVersion string
	FileName   string
	Digest     mc.Digest
}

// Report summarizes one Activate call.
type Report struct {
	TargetDir string
	Activated []ActivatedEntry
}

// Activate fetches each resolved mod's artifact through dl, verifies it
// against the mod's own digest (a mismatch is errkind.Protocol, not a plain
// IO error — it means the content is not what the provider claimed), and
// places it under targetDir/mods/. It writes an activation manifest
// alongside and returns a summary of what was placed.
func Activate(ctx context.Context, reg *registry.Mc, dl *download.Downloader, targetDir string, mods []mc.ModMetadata) (*Report, error) {
	modsDir := filepath.Join(targetDir, "mods")
	report := &Report{TargetDir: targetDir, Activated: make([]ActivatedEntry, 0, len(mods))}

	for _, mod := range mods {
		if mod.DownloadURL == "" {
			return nil, errkind.New(errkind.InvalidArgument, "mod has no download url: "+mod.Slug)
		}
		dest := filepath.Join(modsDir, mod.FileName)
		digest := mod.Digest
		fut, err := dl.Fetch(ctx, mod.DownloadURL, dest, &digest)
		if err != nil {
			return nil, err
		}
		if _, err := fut.Wait(ctx); err != nil {
			return nil, err
		}
		report.Activated = append(report.Activated, ActivatedEntry{
			Slug:       mod.Slug,
			ModVersion: mod.ModVersion,
			FileName:   mod.FileName,
			Digest:     mod.Digest,
		})
	}

	manifest, err := packManifest(report)
	if err != nil {
		return nil, err
	}
	if err := writeManifest(targetDir, manifest); err != nil {
		return nil, err
	}
	return report, nil
}
