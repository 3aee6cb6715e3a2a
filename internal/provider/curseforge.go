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

// CurseForge talks to the CurseForge v1 API, which requires a signed API
// key on every request (SIGNED_METADATA); the key itself is configuration,
// not something this backend manages, so APIKey is taken as a
// NewCurseForge argument and may also be set directly by the caller.
type CurseForge struct {
	client  *http.Client
	baseURL string
	APIKey  string
}

// NewCurseForge builds a CurseForge backend. A nil client defaults to
// http.DefaultClient.
func NewCurseForge(client *http.Client, baseURL, apiKey string) *CurseForge {
	if client == nil {
		client = http.DefaultClient
	}
	return &CurseForge{client: client, baseURL: strings.TrimRight(baseURL, "/"), APIKey: apiKey}
}

func (c *CurseForge) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}
	return req, nil
}

// Init validates that an API key has been configured; CurseForge rejects
// every request without one, so failing fast here beats failing on the
// first real call.
func (c *CurseForge) Init(ctx context.Context) error {
	if c.APIKey == "" {
		return errkind.New(errkind.Auth, "curseforge requires an api key")
	}
	return nil
}

// Close is a no-op: CurseForge holds no connection to release.
func (c *CurseForge) Close() error { return nil }

// IsOnline performs a cheap reachability check against the games endpoint.
func (c *CurseForge) IsOnline(ctx context.Context) bool {
	req, err := c.newRequest(ctx, http.MethodGet, "/games")
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}

// ResolveDownloadURL resolves mod's numeric CurseForge id from its slug,
// then fetches its file listing and returns the newest file's concrete
// artifact (digest, file name, download URL).
func (c *CurseForge) ResolveDownloadURL(ctx context.Context, mod mc.ModRef) (mc.ModMetadata, error) {
	if mod.Slug == "" {
		return mc.ModMetadata{}, errkind.New(errkind.InvalidArgument, "mod ref has no slug")
	}
	modID, err := c.resolveModID(ctx, mod.Slug)
	if err != nil {
		return mc.ModMetadata{}, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/mods/%d/files", modID))
	if err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.InvalidArgument, err, "build curseforge files request")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.Offline, err, "fetch curseforge files")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return mc.ModMetadata{}, errkind.New(errkind.Protocol, fmt.Sprintf("curseforge files returned status %d", resp.StatusCode))
	}
	var payload curseforgeFilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return mc.ModMetadata{}, errkind.Wrap(errkind.Parse, err, "decode curseforge files response")
	}
	if len(payload.Data) == 0 {
		return mc.ModMetadata{}, errkind.New(errkind.NotFound, fmt.Sprintf("curseforge has no files for %q", mod.Slug))
	}
	file := payload.Data[0]
	digest, err := curseforgeFileDigest(file.Hashes)
	if err != nil {
		return mc.ModMetadata{}, err
	}
	return mc.ModMetadata{
		ProviderID:  mc.ProviderCurseForge,
		Slug:        mod.Slug,
		Digest:      digest,
		DownloadURL: file.DownloadURL,
		FileName:    file.FileName,
	}, nil
}

// resolveModID looks up a mod's numeric CurseForge id by slug: the files
// endpoint only accepts the id, not the slug search uses.
func (c *CurseForge) resolveModID(ctx context.Context, slug string) (int, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/mods/search?slug="+slug)
	if err != nil {
		return 0, errkind.Wrap(errkind.InvalidArgument, err, "build curseforge search request")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, errkind.Wrap(errkind.Offline, err, "fetch curseforge search")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, errkind.New(errkind.Protocol, fmt.Sprintf("curseforge search returned status %d", resp.StatusCode))
	}
	var payload curseforgeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, errkind.Wrap(errkind.Parse, err, "decode curseforge search response")
	}
	for _, h := range payload.Data {
		if h.Slug == slug {
			return h.ID, nil
		}
	}
	return 0, errkind.New(errkind.NotFound, fmt.Sprintf("curseforge has no mod with slug %q", slug))
}

type curseforgeMod struct {
	ID      int    `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

type curseforgeSearchResponse struct {
	Data []curseforgeMod `json:"data"`
}

type curseforgeHash struct {
	Value string `json:"value"`
	Algo  int    `json:"algo"`
}

type curseforgeFile struct {
	FileName    string           `json:"fileName"`
	DownloadURL string           `json:"downloadUrl"`
	Hashes      []curseforgeHash `json:"hashes"`
}

type curseforgeFilesResponse struct {
	Data []curseforgeFile `json:"data"`
}

// CurseForge's HashAlgo enum: 1=Sha1, 2=Md5.
const (
	curseforgeHashAlgoSHA1 = 1
	curseforgeHashAlgoMD5  = 2
)

func curseforgeFileDigest(hashes []curseforgeHash) (mc.Digest, error) {
	for _, h := range hashes {
		if h.Algo == curseforgeHashAlgoSHA1 {
			return mc.New(mc.DigestAlgoSHA1, h.Value)
		}
	}
	for _, h := range hashes {
		if h.Algo == curseforgeHashAlgoMD5 {
			return mc.New(mc.DigestAlgoMD5, h.Value)
		}
	}
	return mc.Digest{}, errkind.New(errkind.Protocol, "curseforge file carries no known hash")
}

// FetchPackagesIndex lists searchable mods.
func (c *CurseForge) FetchPackagesIndex(ctx context.Context) ([]mc.ModMetadata, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/mods/search")
	if err != nil {
		return nil, errkind.Wrap(errkind.InvalidArgument, err, "build curseforge search request")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errkind.Wrap(errkind.Offline, err, "fetch curseforge index")
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, errkind.New(errkind.Auth, "curseforge rejected the api key")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errkind.New(errkind.Protocol, fmt.Sprintf("curseforge search returned status %d", resp.StatusCode))
	}
	var payload curseforgeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errkind.Wrap(errkind.Parse, err, "decode curseforge search response")
	}
	out := make([]mc.ModMetadata, 0, len(payload.Data))
	for _, h := range payload.Data {
		out = append(out, mc.ModMetadata{
			ID:         uuid.NewString(),
			ProviderID: mc.ProviderCurseForge,
			Slug:       h.Slug,
			Name:       h.Name,
			Summary:    h.Summary,
		})
	}
	return out, nil
}
