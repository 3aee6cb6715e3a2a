package mc

import (
	"mcpkg/internal/errkind"
	"mcpkg/internal/mpcodec"
)

// ModRef is a lightweight pointer to a specific mod version, used for
// dependency edges and for provider backends resolving a download URL. It
// carries just enough to look the mod back up, not its full metadata.
type ModRef struct {
	ProviderID        ProviderID
	Slug              string
	VersionConstraint string
}

func encodeModRef(m ModRef) map[int]interface{} {
	return map[int]interface{}{
		0: int64(m.ProviderID),
		1: m.Slug,
		2: m.VersionConstraint,
	}
}

func decodeModRef(raw interface{}) (ModRef, error) {
	m, ok := mpcodec.AsMap(raw)
	if !ok {
		return ModRef{}, errkind.New(errkind.Parse, "mod ref: expected map")
	}
	providerID, ok := mpcodec.AsInt64(m["0"])
	if !ok {
		return ModRef{}, errkind.New(errkind.Parse, "mod ref: missing provider id")
	}
	slug, ok := mpcodec.AsString(m["1"])
	if !ok {
		return ModRef{}, errkind.New(errkind.Parse, "mod ref: missing slug")
	}
	constraint, _ := mpcodec.AsString(m["2"])
	return ModRef{ProviderID: ProviderID(providerID), Slug: slug, VersionConstraint: constraint}, nil
}

// ModMetadata is everything mcpkg knows about one resolvable mod version:
// its identity, the provider and loader it came from, the Minecraft family
// it targets, its own digest and download coordinates, and the other mods
// it depends on.
type ModMetadata struct {
	ID            string
	ProviderID    ProviderID
	Name          string
	Slug          string
	Summary       string
	VersionFamily Codename
	LoaderID      LoaderID
	ModVersion    string
	Digest        Digest
	DownloadURL   string
	FileName      string
	Dependencies  []ModRef
}

// Clone returns an independent copy of m, including its own Dependencies
// backing slice.
func (m ModMetadata) Clone() ModMetadata {
	deps := make([]ModRef, len(m.Dependencies))
	copy(deps, m.Dependencies)
	c := m
	c.Dependencies = deps
	return c
}

// Pack serializes m as a libmcpkg.mc.mod_metadata document.
func (m ModMetadata) Pack() ([]byte, error) {
	w := mpcodec.NewWriter()
	if err := w.MapBegin(14); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.WriteHeader(mpcodec.TagModMetadata); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(2, m.ID); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt32(3, int32(m.ProviderID)); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(4, m.Name); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(5, m.Slug); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(6, m.Summary); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(7, m.VersionFamily.Slug()); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt32(8, int32(m.LoaderID)); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(9, m.ModVersion); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVDigest(10, mpcodec.DigestWire{Algo: uint32(m.Digest.Algo), Hex: m.Digest.Hex}); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(11, m.DownloadURL); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(12, m.FileName); err != nil {
		return nil, translateCodecErr(err)
	}
	deps := make([]interface{}, len(m.Dependencies))
	for i, d := range m.Dependencies {
		deps[i] = encodeModRef(d)
	}
	if err := w.KVArray(13, deps); err != nil {
		return nil, translateCodecErr(err)
	}
	return w.Finish()
}

// UnpackModMetadata parses a document produced by ModMetadata.Pack.
func UnpackModMetadata(buf []byte) (ModMetadata, error) {
	r, err := mpcodec.NewReader(buf)
	if err != nil {
		return ModMetadata{}, translateCodecErr(err)
	}
	if _, err := r.ExpectTag(mpcodec.TagModMetadata); err != nil {
		return ModMetadata{}, translateCodecErr(err)
	}
	var m ModMetadata
	var ferr error
	str := func(key int) string {
		s, _, e := r.GetString(key)
		if e != nil && ferr == nil {
			ferr = e
		}
		return s
	}
	i32 := func(key int) int32 {
		n, _, e := r.GetInt32(key)
		if e != nil && ferr == nil {
			ferr = e
		}
		return n
	}
	m.ID = str(2)
	m.ProviderID = ProviderID(i32(3))
	m.Name = str(4)
	m.Slug = str(5)
	m.Summary = str(6)
	familySlug := str(7)
	m.VersionFamily, _ = CodenameFromSlug(familySlug)
	m.LoaderID = LoaderID(i32(8))
	m.ModVersion = str(9)
	dw, _, err := r.GetDigest(10)
	if err != nil {
		return ModMetadata{}, translateCodecErr(err)
	}
	if dw.Hex != "" {
		d, err := New(DigestAlgo(dw.Algo), dw.Hex)
		if err != nil {
			return ModMetadata{}, err
		}
		m.Digest = d
	}
	m.DownloadURL = str(11)
	m.FileName = str(12)
	if ferr != nil {
		return ModMetadata{}, translateCodecErr(ferr)
	}
	depsRaw, _, err := r.GetArray(13)
	if err != nil {
		return ModMetadata{}, translateCodecErr(err)
	}
	m.Dependencies = make([]ModRef, 0, len(depsRaw))
	for _, item := range depsRaw {
		d, err := decodeModRef(item)
		if err != nil {
			return ModMetadata{}, err
		}
		m.Dependencies = append(m.Dependencies, d)
	}
	return m, nil
}
