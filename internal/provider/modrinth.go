// Package provider holds the concrete mc.Ops backends for mcpkg's built-in
// providers. Each talks plain JSON over HTTP to its own real API shape;
// internal/mpcodec is this repo's persistence format, not the wire format
// of services mcpkg doesn't control.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"mcpkg/internal/errkind"
	"mcpkg/internal/mc"
)

// Modrinth talks to the Modrinth v2 API.
type Modrinth struct {
	client  *http.Client
	baseURL string
}

// NewModrinth builds a Modrinth backend. A nil client defaults to
// http.DefaultClient.
func NewModrinth(client *http.Client, baseURL string) *Modrinth {
	if client == nil {
		client = http.DefaultClient
	}
	return &Modrinth{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Init is a no-op: Modrinth's API needs no session setup.
func (m *Modrinth) Init(ctx context.Context) error { return nil }

// Close is a no-op: Modrinth holds no connection to release.
func (m *Modrinth) Close() error { return nil }

// IsOnline performs a cheap reachability check against the API root.
func (m *Modrinth) IsOnline(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/v2", nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

// ResolveDownloadURL fetches mod's version list and returns the concrete
// artifact (digest, file name, download URL) of its newest version, which
// Modrinth returns first.
func (m *Modrinth) ResolveDownloadURL(ctx context.Context, mod mc.ModRef) (mc.ModMetadata, error) {
	if mod.Slug == "" {
		return mc.ModMetadata{}, errkind.New(errkind.InvalidArgument, "mod ref has no slug")
	}
	url := fmt.Sprintf("%s/v2/project/%s/version", m.baseURL, mod.Slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.InvalidArgument, err, "build modrinth version request")
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.Offline, err, "fetch modrinth version list")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return mc.ModMetadata{}, errkind.New(errkind.Protocol, fmt.Sprintf("modrinth version list returned status %d", resp.StatusCode))
	}
	var versions []modrinthVersion
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.Parse, err, "decode modrinth version list")
	}
	if len(versions) == 0 {
		return mc.ModMetadata{}, errkind.New(errkind.NotFound, fmt.Sprintf("modrinth has no versions for %q", mod.Slug))
	}
	file, ok := modrinthPrimaryFile(versions[0].Files)
	if !ok {
		return mc.ModMetadata{}, errkind.New(errkind.NotFound, fmt.Sprintf("modrinth version %q has no files", versions[0].VersionNumber))
	}
	digest, err := modrinthFileDigest(file.Hashes)
	if err != nil {
		return mc.ModMetadata{}, err
	}
	return mc.ModMetadata{
		ProviderID:  mc.ProviderModrinth,
		Slug:        mod.Slug,
		ModVersion:  versions[0].VersionNumber,
		Digest:      digest,
		DownloadURL: file.URL,
		FileName:    file.Filename,
	}, nil
}

type modrinthFile struct {
	URL      string            `json:"url"`
	Filename string            `json:"filename"`
	Primary  bool              `json:"primary"`
	Hashes   map[string]string `json:"hashes"`
}

type modrinthVersion struct {
	VersionNumber string         `json:"version_number"`
	Files         []modrinthFile `json:"files"`
}

// modrinthPrimaryFile picks the file flagged primary, or the first file if
// none is, matching how the Modrinth web client itself resolves ambiguity.
func modrinthPrimaryFile(files []modrinthFile) (modrinthFile, bool) {
	for _, f := range files {
		if f.Primary {
			return f, true
		}
	}
	if len(files) > 0 {
		return files[0], true
	}
	return modrinthFile{}, false
}

// modrinthFileDigest prefers sha512 over sha1, matching the strength of
// hash Modrinth itself lists first in its API docs.
func modrinthFileDigest(hashes map[string]string) (mc.Digest, error) {
	if hex, ok := hashes["sha512"]; ok {
		return mc.New(mc.DigestAlgoSHA512, hex)
	}
	if hex, ok := hashes["sha1"]; ok {
		return mc.New(mc.DigestAlgoSHA1, hex)
	}
	return mc.Digest{}, errkind.New(errkind.Protocol, "modrinth file carries no known hash")
}

type modrinthHit struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type modrinthSearchResponse struct {
	Hits []modrinthHit `json:"hits"`
}

// FetchPackagesIndex lists searchable projects, trimmed to the fields
// ModMetadata needs. Version/digest/download-url fields are left zero:
// those come from ResolveDownloadURL's version-specific lookup, fetched
// lazily only for the mod actually being installed.
func (m *Modrinth) FetchPackagesIndex(ctx context.Context) ([]mc.ModMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/v2/search", nil)
	if err != nil {
		return nil, errkind.Wrap(errkind.InvalidArgument, err, "build modrinth search request")
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, errkind.Wrap(errkind.Offline, err, "fetch modrinth index")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errkind.New(errkind.Protocol, fmt.Sprintf("modrinth search returned status %d", resp.StatusCode))
	}
	var payload modrinthSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errkind.Wrap(errkind.Parse, err, "decode modrinth search response")
	}
	out := make([]mc.ModMetadata, 0, len(payload.Hits))
	for _, h := range payload.Hits {
		out = append(out, mc.ModMetadata{
			ID:         uuid.NewString(),
			ProviderID: mc.ProviderModrinth,
			Slug:       h.Slug,
			Name:       h.Title,
			Summary:    h.Description,
		})
	}
	return out, nil
}
