package mc

import (
	"context"
	"strings"

	"mcpkg/internal/mpcodec"
)

// Provider flag bits, packed into a single uint32 field on the wire.
const (
	ProviderFlagHasAPI uint32 = 1 << iota
	ProviderFlagProvidesIndex
	ProviderFlagSupportsClient
	ProviderFlagSupportsServer
	ProviderFlagOnlineRequired
	ProviderFlagSignedMetadata
	ProviderFlagSupportsSearch
	ProviderFlagLocalOnly
)

// Ops is the capability set a provider backend must implement to be seeded
// into a registry. It replaces the C original's function-pointer struct with
// a plain Go interface, injected once at seed time rather than stored
// per-value on every Provider copy.
type Ops interface {
	Init(ctx context.Context) error
	Close() error
	IsOnline(ctx context.Context) bool
	// ResolveDownloadURL fetches the concrete, version-specific artifact for
	// mod: its digest, file name, version string, and a download URL that
	// actually serves bytes, as opposed to FetchPackagesIndex's bulk listing
	// endpoint which carries none of those fields.
	ResolveDownloadURL(ctx context.Context, mod ModRef) (ModMetadata, error)
	FetchPackagesIndex(ctx context.Context) ([]ModMetadata, error)
}

// Provider describes one remote or local source of mod metadata. Ops is nil
// until a registry seeds a real backend for this provider's ID; a Provider
// value with a nil Ops is still valid to inspect (Name, BaseURL, Flags) but
// cannot serve FetchPackagesIndex or ResolveDownloadURL.
type Provider struct {
	ID      ProviderID
	Name    string
	BaseURL MaybeOwned
	Online  bool
	Flags   uint32
	Ops     Ops
}

type providerTemplate struct {
	name    string
	baseURL string
	online  bool
	flags   uint32
}

var providerTemplates = map[ProviderID]providerTemplate{
	ProviderModrinth: {
		name:    "Modrinth",
		baseURL: "https://api.modrinth.com",
		online:  true,
		flags:   ProviderFlagHasAPI | ProviderFlagProvidesIndex | ProviderFlagSupportsClient | ProviderFlagSupportsServer | ProviderFlagSupportsSearch,
	},
	ProviderCurseForge: {
		name:    "CurseForge",
		baseURL: "https://api.curseforge.com/v1",
		online:  true,
		flags:   ProviderFlagOnlineRequired | ProviderFlagHasAPI | ProviderFlagProvidesIndex | ProviderFlagSignedMetadata | ProviderFlagSupportsSearch,
	},
	ProviderHangar: {
		name:    "Hangar",
		baseURL: "https://hangar.papermc.io/api/v1",
		online:  true,
		flags:   ProviderFlagHasAPI | ProviderFlagProvidesIndex | ProviderFlagSupportsServer,
	},
	ProviderLocal: {
		name:    "Local",
		baseURL: "",
		online:  false,
		flags:   ProviderFlagLocalOnly,
	},
}

// New allocates a Provider for id using its built-in template, with Ops left
// nil until seeded.
func New(id ProviderID) *Provider {
	p := Make(id)
	return &p
}

// Free is a no-op placeholder kept only as a documented lifecycle marker
// carried over from the C original's explicit destroy step; Go's garbage
// collector reclaims a *Provider on its own.
func (p *Provider) Free() {}

// Make returns a by-value provider template for id. Unknown ids still
// produce a usable zero-flagged value rather than an error, matching the
// original's "unknown provider is inert, not fatal" stance.
func Make(id ProviderID) Provider {
	t, ok := providerTemplates[id]
	if !ok {
		return Provider{ID: id, Name: id.String(), BaseURL: Static(""), Flags: 0}
	}
	return Provider{ID: id, Name: t.name, BaseURL: Static(t.baseURL), Online: t.online, Flags: t.flags}
}

// FromString resolves a provider name to its ID.
func FromString(name string) (ProviderID, bool) { return ProviderIDFromString(name) }

// FromStringCanon resolves a provider name straight to its canonical
// template value.
func FromStringCanon(name string) (Provider, bool) {
	id, ok := ProviderIDFromString(name)
	if !ok {
		return Provider{}, false
	}
	return Make(id), true
}

// Clone returns an independent copy of p, including an independent copy of
// BaseURL. Ops is an interface value referencing a shared backend and is
// copied by reference, matching how a registry's seeded Ops instance is
// meant to be shared across a provider's current-selection copies.
func (p Provider) Clone() Provider {
	return Provider{ID: p.ID, Name: p.Name, BaseURL: p.BaseURL.Clone(), Online: p.Online, Flags: p.Flags, Ops: p.Ops}
}

// IsOnline reports whether p should be treated as reachable. A provider's
// Ops.IsOnline, when attached, overrides the cached Online field; with no
// Ops attached it falls back to the cached boolean rather than probing
// anything.
func (p Provider) IsOnline(ctx context.Context) bool {
	if p.Ops != nil {
		return p.Ops.IsOnline(ctx)
	}
	return p.Online
}

// WithBaseURL returns a copy of p with an owned override of BaseURL, for
// configuration that points a provider at a mirror or self-hosted instance.
func (p Provider) WithBaseURL(url string) Provider {
	c := p.Clone()
	c.BaseURL = Owned(strings.TrimRight(url, "/"))
	return c
}

// Pack serializes p (without Ops, which is not representable on the wire).
func (p Provider) Pack() ([]byte, error) {
	w := mpcodec.NewWriter()
	if err := w.MapBegin(7); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.WriteHeader(mpcodec.TagProvider); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt32(2, int32(p.ID)); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(3, p.Name); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(4, p.BaseURL.String()); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt32(5, boolToInt32(p.Online)); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVUint32(6, p.Flags); err != nil {
		return nil, translateCodecErr(err)
	}
	return w.Finish()
}

// UnpackProvider parses a document produced by Provider.Pack. The result's
// Ops is always nil; a registry seeds it separately.
func UnpackProvider(buf []byte) (Provider, error) {
	r, err := mpcodec.NewReader(buf)
	if err != nil {
		return Provider{}, translateCodecErr(err)
	}
	if _, err := r.ExpectTag(mpcodec.TagProvider); err != nil {
		return Provider{}, translateCodecErr(err)
	}
	id, _, err := r.GetInt32(2)
	if err != nil {
		return Provider{}, translateCodecErr(err)
	}
	name, _, err := r.GetString(3)
	if err != nil {
		return Provider{}, translateCodecErr(err)
	}
	baseURL, _, err := r.GetString(4)
	if err != nil {
		return Provider{}, translateCodecErr(err)
	}
	online, _, err := r.GetInt32(5)
	if err != nil {
		return Provider{}, translateCodecErr(err)
	}
	flags, _, err := r.GetUint32(6)
	if err != nil {
		return Provider{}, translateCodecErr(err)
	}
	return Provider{ID: ProviderID(id), Name: name, BaseURL: Owned(baseURL), Online: online != 0, Flags: flags}, nil
}
