package mc

import (
	"context"
	"testing"
)

func TestProviderMakeAndClone(t *testing.T) {
	p := Make(ProviderModrinth)
	if p.Name != "Modrinth" || p.BaseURL.String() != "https://api.modrinth.com" {
		t.Fatalf("unexpected template: %+v", p)
	}
	c := p.Clone()
	c.BaseURL = Owned("https://mirror.example/v2")
	if p.BaseURL.String() == c.BaseURL.String() {
		t.Fatalf("clone should not alias original's BaseURL")
	}
}

func TestProviderPackRoundTrip(t *testing.T) {
	p := Make(ProviderCurseForge)
	buf, err := p.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, err := UnpackProvider(buf)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if got.ID != p.ID || got.Name != p.Name || got.BaseURL.String() != p.BaseURL.String() || got.Online != p.Online || got.Flags != p.Flags {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, p)
	}
	if got.Ops != nil {
		t.Fatalf("unpacked provider should carry a nil Ops")
	}
}

func TestProviderIsOnlineFallsBackToCachedField(t *testing.T) {
	p := Make(ProviderModrinth)
	if !p.Online {
		t.Fatalf("expected Modrinth template to seed Online=true")
	}
	if !p.IsOnline(context.Background()) {
		t.Fatalf("expected IsOnline with nil Ops to return the cached Online field")
	}
	p.Online = false
	if p.IsOnline(context.Background()) {
		t.Fatalf("expected IsOnline with nil Ops to reflect a flipped cached field")
	}
}

type fakeOverrideOps struct{ online bool }

func (f fakeOverrideOps) Init(ctx context.Context) error { return nil }
func (f fakeOverrideOps) Close() error                   { return nil }
func (f fakeOverrideOps) IsOnline(ctx context.Context) bool {
	return f.online
}
func (f fakeOverrideOps) ResolveDownloadURL(ctx context.Context, mod ModRef) (ModMetadata, error) {
	return ModMetadata{}, nil
}
func (f fakeOverrideOps) FetchPackagesIndex(ctx context.Context) ([]ModMetadata, error) {
	return nil, nil
}

func TestProviderIsOnlinePrefersOpsOverCachedField(t *testing.T) {
	p := Make(ProviderModrinth)
	p.Online = true
	p.Ops = fakeOverrideOps{online: false}
	if p.IsOnline(context.Background()) {
		t.Fatalf("expected Ops.IsOnline to override the cached Online=true field")
	}
}

func TestProviderFromStringCanon(t *testing.T) {
	p, ok := FromStringCanon("modrinth")
	if !ok || p.ID != ProviderModrinth {
		t.Fatalf("FromStringCanon(modrinth) = %+v, %v", p, ok)
	}
	if _, ok := FromStringCanon("not-a-provider"); ok {
		t.Fatalf("expected unknown provider name to fail")
	}
}

func TestLoaderPackRoundTrip(t *testing.T) {
	l := MakeLoader(LoaderVelocity)
	l.BaseURL = Owned("http://proxy.local")
	buf, err := l.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, err := UnpackLoader(buf)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if got.ID != l.ID || got.Name != l.Name || got.BaseURL.String() != l.BaseURL.String() || got.Flags != l.Flags {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, l)
	}
}

func TestVersionFamilyLatestAndRoundTrip(t *testing.T) {
	vf := NewVersionFamily(CodenameTrickyTrials, []string{"1.21.8", "1.21.7", "1.21.6"})
	latest, ok := vf.Latest()
	if !ok || latest != "1.21.8" {
		t.Fatalf("Latest() = %q, %v", latest, ok)
	}
	buf, err := vf.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, err := UnpackVersionFamily(buf)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if got.Codename != vf.Codename || got.Snapshot != vf.Snapshot || len(got.Versions) != 3 || got.Versions[0] != "1.21.8" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestVersionFamilySnapshotRoundTrip(t *testing.T) {
	vf := VersionFamily{Codename: CodenameTrickyTrials, Snapshot: true, Versions: []string{"25w04a"}}
	buf, err := vf.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, err := UnpackVersionFamily(buf)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if !got.Snapshot {
		t.Fatalf("expected Snapshot to round-trip as true, got %+v", got)
	}
}

func TestVersionFamilyEmptyLatest(t *testing.T) {
	vf := NewVersionFamily(CodenameTrailsAndTales, nil)
	if _, ok := vf.Latest(); ok {
		t.Fatalf("expected Latest() on empty family to report false")
	}
}

func TestDigestNewValidation(t *testing.T) {
	if _, err := New(DigestAlgoSHA256, "tooshort"); err == nil {
		t.Fatalf("expected error for wrong-length hex")
	}
	if _, err := New(DigestAlgoSHA1, "zz"+"00000000000000000000000000000000000000"); err == nil {
		t.Fatalf("expected error for non-hex characters")
	}
	d, err := New(DigestAlgoSHA256, "AB"+"00000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Hex != "ab"+"00000000000000000000000000000000000000000000000000000000000000" {
		t.Fatalf("expected hex to be lowercased, got %q", d.Hex)
	}
}

func TestDigestFromString(t *testing.T) {
	hex := "aa000000000000000000000000000000000000000000000000000000000000ff"
	d, ok := FromString("sha256:" + hex)
	if !ok || d.Algo != DigestAlgoSHA256 || d.Hex != hex {
		t.Fatalf("FromString mismatch: %+v, %v", d, ok)
	}
	if _, ok := FromString("not-well-formed"); ok {
		t.Fatalf("expected malformed digest string to fail")
	}
}

func TestDigestPackRoundTrip(t *testing.T) {
	d, err := New(DigestAlgoMD5, "0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	buf, err := d.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, err := UnpackDigest(buf)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if got != d {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, d)
	}
}

func TestModMetadataPackRoundTrip(t *testing.T) {
	d, err := New(DigestAlgoSHA1, "0123456789abcdef0123456789abcdef01234567")
	if err != nil {
		t.Fatalf("new digest: %v", err)
	}
	m := ModMetadata{
		ID:            "sodium-1.21.1",
		ProviderID:    ProviderModrinth,
		Name:          "Sodium",
		Slug:          "sodium",
		Summary:       "Rendering engine optimization mod",
		VersionFamily: CodenameTrickyTrials,
		LoaderID:      LoaderFabric,
		ModVersion:    "mc1.21.1-0.5.11",
		Digest:        d,
		DownloadURL:   "https://cdn.modrinth.com/data/AANobbMI/versions/x/sodium.jar",
		FileName:      "sodium.jar",
		Dependencies: []ModRef{
			{ProviderID: ProviderModrinth, Slug: "fabric-api", VersionConstraint: ">=0.100.0"},
		},
	}
	buf, err := m.Pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	got, err := UnpackModMetadata(buf)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if got.ID != m.ID || got.Slug != m.Slug || got.VersionFamily != m.VersionFamily {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Digest != m.Digest {
		t.Fatalf("digest mismatch: %+v vs %+v", got.Digest, m.Digest)
	}
	if len(got.Dependencies) != 1 || got.Dependencies[0].Slug != "fabric-api" {
		t.Fatalf("dependency mismatch: %+v", got.Dependencies)
	}
}

func TestModMetadataCloneIndependentDependencies(t *testing.T) {
	m := ModMetadata{Dependencies: []ModRef{{Slug: "a"}, {Slug: "b"}}}
	c := m.Clone()
	c.Dependencies[0].Slug = "mutated"
	if m.Dependencies[0].Slug == "mutated" {
		t.Fatalf("clone should not alias original's Dependencies backing array")
	}
}
