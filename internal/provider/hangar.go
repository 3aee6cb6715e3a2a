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

// Hangar talks to the Paper/Velocity-ecosystem Hangar API.
type Hangar struct {
	client  *http.Client
	baseURL string
}

// NewHangar builds a Hangar backend. A nil client defaults to
// http.DefaultClient.
func NewHangar(client *http.Client, baseURL string) *Hangar {
	if client == nil {
		client = http.DefaultClient
	}
	return &Hangar{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Init is a no-op: Hangar's public search endpoints need no session setup.
func (h *Hangar) Init(ctx context.Context) error { return nil }

// Close is a no-op: Hangar holds no connection to release.
func (h *Hangar) Close() error { return nil }

// IsOnline performs a cheap reachability check against the projects
// endpoint.
func (h *Hangar) IsOnline(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/projects", nil)
	if err != nil {
		return false
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

// ResolveDownloadURL fetches mod's version listing and returns the newest
// version's first platform download as the concrete artifact.
func (h *Hangar) ResolveDownloadURL(ctx context.Context, mod mc.ModRef) (mc.ModMetadata, error) {
	if mod.Slug == "" {
		return mc.ModMetadata{}, errkind.New(errkind.InvalidArgument, "mod ref has no slug")
	}
	url := fmt.Sprintf("%s/projects/%s/versions", h.baseURL, mod.Slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.InvalidArgument, err, "build hangar versions request")
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.Offline, err, "fetch hangar versions")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return mc.ModMetadata{}, errkind.New(errkind.Protocol, fmt.Sprintf("hangar versions returned status %d", resp.StatusCode))
	}
	var payload hangarVersionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.Parse, err, "decode hangar versions response")
	}
	if len(payload.Result) == 0 {
		return mc.ModMetadata{}, errkind.New(errkind.NotFound, fmt.Sprintf("hangar has no versions for %q", mod.Slug))
	}
	version := payload.Result[0]
	var dl hangarDownload
	found := false
	for _, d := range version.Downloads {
		dl = d
		found = true
		break
	}
	if !found || dl.FileInfo.SHA256 == "" {
		return mc.ModMetadata{}, errkind.New(errkind.NotFound, fmt.Sprintf("hangar version %q has no downloadable platform", version.Name))
	}
	digest, err := mc.New(mc.DigestAlgoSHA256, dl.FileInfo.SHA256)
	if err != nil {
		return mc.ModMetadata{}, err
	}
	return mc.ModMetadata{
		ProviderID:  mc.ProviderHangar,
		Slug:        mod.Slug,
		ModVersion:  version.Name,
		Digest:      digest,
		DownloadURL: dl.DownloadURL,
		FileName:    dl.FileInfo.Name,
	}, nil
}

type hangarFileInfo struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256Hash"`
}

type hangarDownload struct {
	FileInfo    hangarFileInfo `json:"fileInfo"`
	DownloadURL string         `json:"downloadUrl"`
}

type hangarVersion struct {
	Name      string                    `json:"name"`
	Downloads map[string]hangarDownload `json:"downloads"`
}

type hangarVersionsResponse struct {
	Result []hangarVersion `json:"result"`
}

type hangarProject struct {
	Slug        string `json:"name"`
	Description string `json:"description"`
}

type hangarSearchResponse struct {
	Result []hangarProject `json:"result"`
}

// FetchPackagesIndex lists searchable projects.
func (h *Hangar) FetchPackagesIndex(ctx context.Context) ([]mc.ModMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/projects", nil)
	if err != nil {
		return nil, errkind.Wrap(errkind.InvalidArgument, err, "build hangar search request")
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errkind.Wrap(errkind.Offline, err, "fetch hangar index")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errkind.New(errkind.Protocol, fmt.Sprintf("hangar search returned status %d", resp.StatusCode))
	}
	var payload hangarSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errkind.Wrap(errkind.Parse, err, "decode hangar search response")
	}
	out := make([]mc.ModMetadata, 0, len(payload.Result))
	for _, p := range payload.Result {
		out = append(out, mc.ModMetadata{
			ID:         uuid.NewString(),
			ProviderID: mc.ProviderHangar,
			Slug:       p.Slug,
			Name:       p.Slug,
			Summary:    p.Description,
		})
	}
	return out, nil
}
