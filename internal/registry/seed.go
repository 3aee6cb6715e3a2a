package registry

import "mcpkg/internal/mc"

// allProviderIDs and allLoaderIDs are the fixed built-in catalogs; unlike
// the source's flagged double-seed bug (calling its seed routine twice
// duplicated every entry because it appended to a slice), Seed* here is
// naturally idempotent: AddProvider/AddLoader key by ID in a map, so
// seeding twice just overwrites each entry with itself.
var allProviderIDs = []mc.ProviderID{mc.ProviderModrinth, mc.ProviderCurseForge, mc.ProviderHangar, mc.ProviderLocal}
var allLoaderIDs = []mc.LoaderID{
	mc.LoaderVanilla, mc.LoaderForge, mc.LoaderFabric, mc.LoaderQuilt,
	mc.LoaderPaper, mc.LoaderPurpur, mc.LoaderVelocity,
}

// SeedProviders populates m with the built-in provider catalog. opsByID
// attaches a live backend to the providers it names; providers with no
// entry in opsByID are seeded with a nil Ops, inspectable but unable to
// serve FetchPackagesIndex/ResolveDownloadURL until seeded again with one.
func (m *Mc) SeedProviders(opsByID map[mc.ProviderID]mc.Ops) {
	for _, id := range allProviderIDs {
		p := mc.Make(id)
		if ops, ok := opsByID[id]; ok {
			p.Ops = ops
		}
		m.AddProvider(p)
	}
}

// SeedLoaders populates m with the built-in loader catalog.
func (m *Mc) SeedLoaders(opsByID map[mc.LoaderID]mc.LoaderOps) {
	for _, id := range allLoaderIDs {
		l := mc.MakeLoader(id)
		if ops, ok := opsByID[id]; ok {
			l.Ops = ops
		}
		m.AddLoader(l)
	}
}

// versionCatalog lists the patch releases mcpkg ships seed data for, per
// family, newest first. It only needs to reach back far enough to resolve
// dependency constraints expressed against recent Minecraft releases.
var versionCatalog = map[mc.Codename][]string{
	mc.CodenameTrickyTrials:        {"1.21.8", "1.21.7", "1.21.6", "1.21.5", "1.21.4", "1.21.1", "1.21"},
	mc.CodenameTrailsAndTales:      {"1.20.6", "1.20.4", "1.20.2", "1.20.1", "1.20"},
	mc.CodenameWildUpdate:          {"1.19.4", "1.19.3", "1.19.2", "1.19"},
	mc.CodenameCavesAndCliffsPart2: {"1.18.2", "1.18.1", "1.18"},
	mc.CodenameCavesAndCliffsPart1: {"1.17.1", "1.17"},
	mc.CodenameNetherUpdate:        {"1.16.5", "1.16.4", "1.16"},
}

// SeedVersionsMinimal seeds only the current stable family (Tricky Trials),
// the common case for a fresh install targeting the latest release.
func (m *Mc) SeedVersionsMinimal() {
	m.AddVersionFamily(mc.VersionFamily{
		Codename: mc.CodenameTrickyTrials,
		Versions: append([]string(nil), versionCatalog[mc.CodenameTrickyTrials]...),
	})
}

// SeedVersionsAll seeds every family mcpkg carries seed data for, for
// installs that need to target an older Minecraft release.
func (m *Mc) SeedVersionsAll() {
	for code, versions := range versionCatalog {
		m.AddVersionFamily(mc.VersionFamily{Codename: code, Versions: append([]string(nil), versions...)})
	}
}
