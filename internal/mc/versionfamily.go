package mc

import (
	"mcpkg/internal/container"
	"mcpkg/internal/mpcodec"
)

// VersionFamily groups the patch releases that share one marketing name
// (e.g. "1.21", "1.21.1" .. "1.21.8" all belong to Tricky Trials). Versions
// is kept newest-first; Latest reads the head. Snapshot marks a family made
// up of pre-release/snapshot builds rather than stable patch releases.
//
// There is no version-to-codename lookup on this type: resolving a dotted
// release string to a codename requires scanning the versions actually
// seeded into a registry (see registry.Mc.CodenameFromVersionIn), not a
// context-free prefix table.
type VersionFamily struct {
	Codename Codename
	Snapshot bool
	Versions []string
}

// NewVersionFamily builds a family for codename with versions kept in the
// order given; callers are expected to pass newest-first. The copy goes
// through container.StringList, the owned-ordered-strings type spec.md §4.2
// describes Versions as.
func NewVersionFamily(codename Codename, versions []string) *VersionFamily {
	return &VersionFamily{Codename: codename, Versions: container.FromSlice(versions).Slice()}
}

// Free is a no-op placeholder kept only as a documented lifecycle marker.
func (vf *VersionFamily) Free() {}

// Latest returns the newest version in the family, or ("", false) if it
// carries none yet.
func (vf *VersionFamily) Latest() (string, bool) {
	if len(vf.Versions) == 0 {
		return "", false
	}
	return vf.Versions[0], true
}

// Clone returns an independent copy of vf, including its own backing slice.
func (vf VersionFamily) Clone() VersionFamily {
	return VersionFamily{Codename: vf.Codename, Snapshot: vf.Snapshot, Versions: container.FromSlice(vf.Versions).Slice()}
}

// Pack serializes vf as a libmcpkg.mc.version_family document:
// {0:tag, 1:ver, 2:codename:i32, 3:snapshot:i32, 4:versions:strlist}.
func (vf VersionFamily) Pack() ([]byte, error) {
	w := mpcodec.NewWriter()
	if err := w.MapBegin(5); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.WriteHeader(mpcodec.TagVersionFamily); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt32(2, int32(vf.Codename)); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVInt32(3, boolToInt32(vf.Snapshot)); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVStringList(4, vf.Versions); err != nil {
		return nil, translateCodecErr(err)
	}
	return w.Finish()
}

// UnpackVersionFamily parses a document produced by VersionFamily.Pack.
func UnpackVersionFamily(buf []byte) (VersionFamily, error) {
	r, err := mpcodec.NewReader(buf)
	if err != nil {
		return VersionFamily{}, translateCodecErr(err)
	}
	if _, err := r.ExpectTag(mpcodec.TagVersionFamily); err != nil {
		return VersionFamily{}, translateCodecErr(err)
	}
	codename, _, err := r.GetInt32(2)
	if err != nil {
		return VersionFamily{}, translateCodecErr(err)
	}
	snapshot, _, err := r.GetInt32(3)
	if err != nil {
		return VersionFamily{}, translateCodecErr(err)
	}
	versions, _, err := r.GetStringList(4)
	if err != nil {
		return VersionFamily{}, translateCodecErr(err)
	}
	return VersionFamily{Codename: Codename(codename), Snapshot: snapshot != 0, Versions: versions}, nil
}
