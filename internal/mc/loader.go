package mc

import "mcpkg/internal/mpcodec"

// LoaderOps is the capability set a loader backend implements once seeded.
// Loaders are far thinner than providers: they only need to judge whether a
// candidate mod is installable under them.
type LoaderOps interface {
	IsCompatible(mod ModRef) bool
}

// Loader flag bits, matching Provider's SUPPORTS_CLIENT/SUPPORTS_SERVER/
// HAS_API vocabulary rather than a bespoke client/server/proxy set.
const (
	LoaderFlagSupportsClient uint32 = 1 << iota
	LoaderFlagSupportsServer
	LoaderFlagHasAPI
)

// Loader describes one mod-loading runtime (Forge, Fabric, a Paper server,
// a Velocity proxy, ...).
type Loader struct {
	ID      LoaderID
	Name    string
	BaseURL MaybeOwned
	Flags   uint32
	Ops     LoaderOps
}

type loaderTemplate struct {
	name    string
	baseURL string
	flags   uint32
}

// Velocity is neither a client nor a server runtime; it carries no
// SUPPORTS_CLIENT/SUPPORTS_SERVER flag, only HAS_API for the plugin
// ecosystem it exposes through Hangar.
var loaderTemplates = map[LoaderID]loaderTemplate{
	LoaderVanilla:  {name: "Vanilla", flags: LoaderFlagSupportsClient | LoaderFlagSupportsServer},
	LoaderForge:    {name: "Forge", flags: LoaderFlagSupportsClient | LoaderFlagSupportsServer | LoaderFlagHasAPI},
	LoaderFabric:   {name: "Fabric", flags: LoaderFlagSupportsClient | LoaderFlagSupportsServer | LoaderFlagHasAPI},
	LoaderQuilt:    {name: "Quilt", flags: LoaderFlagSupportsClient | LoaderFlagSupportsServer | LoaderFlagHasAPI},
	LoaderPaper:    {name: "Paper", baseURL: "https://hangar.papermc.io/api/v1", flags: LoaderFlagSupportsServer | LoaderFlagHasAPI},
	LoaderPurpur:   {name: "Purpur", flags: LoaderFlagSupportsServer},
	LoaderVelocity: {name: "Velocity", baseURL: "https://hangar.papermc.io/api/v1", flags: LoaderFlagHasAPI},
}

// NewLoader allocates a Loader for id using its built-in template.
func NewLoader(id LoaderID) *Loader {
	l := MakeLoader(id)
	return &l
}

// Free is a no-op placeholder kept only as a documented lifecycle marker.
func (l *Loader) Free() {}

// MakeLoader returns a by-value loader template for id.
func MakeLoader(id LoaderID) Loader {
	t, ok := loaderTemplates[id]
	if !ok {
		return Loader{ID: id, Name: id.String(), BaseURL: Static(""), Flags: 0}
	}
	return Loader{ID: id, Name: t.name, BaseURL: Static(t.baseURL), Flags: t.flags}
}

// LoaderFromString resolves a loader name to its ID.
func LoaderFromString(name string) (LoaderID, bool) { return LoaderIDFromString(name) }

// LoaderFromStringCanon resolves a loader name straight to its canonical
// template value.
func LoaderFromStringCanon(name string) (Loader, bool) {
	id, ok := LoaderIDFromString(name)
	if !ok {
		return Loader{}, false
	}
	return MakeLoader(id), true
}

// Clone returns an independent copy of l, including an independent copy of
// BaseURL. Ops is copied by reference.
func (l Loader) Clone() Loader {
	return Loader{ID: l.ID, Name: l.Name, BaseURL: l.BaseURL.Clone(), Flags: l.Flags, Ops: l.Ops}
}

// IsOnline reports whether l should be treated as reachable. Loaders carry
// no cached online field (spec: "same minus the online field"); with no
// ops attached the conservative default is true, unlike Provider's cached
// boolean fallback.
func (l Loader) IsOnline() bool {
	return true
}

// Pack serializes l (without Ops, which is not representable on the wire).
// The wire layout mirrors Provider's minus the online field: base_url sits
// at key 4 and flags shift down to key 5.
func (l Loader) Pack() ([]byte, error) {
	w := mpcodec.NewWriter()
	if err := w.MapBegin(6); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.WriteHeader(mpcodec.TagLoader); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt32(2, int32(l.ID)); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(3, l.Name); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(4, l.BaseURL.String()); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVUint32(5, l.Flags); err != nil {
		return nil, translateCodecErr(err)
	}
	return w.Finish()
}

// UnpackLoader parses a document produced by Loader.Pack. The result's Ops
// is always nil; a registry seeds it separately.
func UnpackLoader(buf []byte) (Loader, error) {
	r, err := mpcodec.NewReader(buf)
	if err != nil {
		return Loader{}, translateCodecErr(err)
	}
	if _, err := r.ExpectTag(mpcodec.TagLoader); err != nil {
		return Loader{}, translateCodecErr(err)
	}
	id, _, err := r.GetInt32(2)
	if err != nil {
		return Loader{}, translateCodecErr(err)
	}
	name, _, err := r.GetString(3)
	if err != nil {
		return Loader{}, translateCodecErr(err)
	}
	baseURL, _, err := r.GetString(4)
	if err != nil {
		return Loader{}, translateCodecErr(err)
	}
	flags, _, err := r.GetUint32(5)
	if err != nil {
		return Loader{}, translateCodecErr(err)
	}
	return Loader{ID: LoaderID(id), Name: name, BaseURL: Owned(baseURL), Flags: flags}, nil
}
