// Package registry holds the Mc context: the live catalog of providers,
// loaders, and Minecraft version families, plus the "currently selected"
// one of each that most commands operate against by default. It is
// grounded on the same RWMutex-protected named-map shape the teacher uses
// for its connection/chain catalogs, generalized to three collections and
// a clone-on-select current pointer instead of a flat string map.
package registry

import (
	"strings"
	"sync"

	"mcpkg/internal/errkind"
	"mcpkg/internal/mc"
)

// Mc is the root context every mcpkg command reads from and writes to.
// Collections are owned maps; CurrentX fields are independent clones taken
// at selection time, so mutating a collection entry afterwards never
// changes what a caller already holding the current selection sees.
type Mc struct {
	mu sync.RWMutex

	providers map[mc.ProviderID]mc.Provider
	loaders   map[mc.LoaderID]mc.Loader
	families  map[mc.Codename]mc.VersionFamily

	currentProvider *mc.Provider
	currentLoader   *mc.Loader
	currentFamily   *mc.VersionFamily
}

// New returns an empty, unseeded context.
func New() *Mc {
	return &Mc{
		providers: make(map[mc.ProviderID]mc.Provider),
		loaders:   make(map[mc.LoaderID]mc.Loader),
		families:  make(map[mc.Codename]mc.VersionFamily),
	}
}

var (
	globalMu   sync.Mutex
	globalInst *Mc
)

// GlobalInit installs inst as the process-wide registry. Calling it again
// replaces the previous instance; callers that need isolated registries
// (tests, concurrent command invocations in-process) should use New
// directly instead of the global accessor.
func GlobalInit(inst *Mc) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalInst = inst
}

// Global returns the process-wide registry, or nil if GlobalInit was never
// called.
func Global() *Mc {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalInst
}

// GlobalShutdown clears the process-wide registry reference.
func GlobalShutdown() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalInst = nil
}

// AddProvider inserts or overwrites p under its own ID.
func (m *Mc) AddProvider(p mc.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[p.ID] = p
}

// AddLoader inserts or overwrites l under its own ID.
func (m *Mc) AddLoader(l mc.Loader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[l.ID] = l
}

// AddVersionFamily inserts or overwrites vf under its own codename.
func (m *Mc) AddVersionFamily(vf mc.VersionFamily) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.families[vf.Codename] = vf.Clone()
}

// Providers returns a snapshot of every seeded provider, in no particular
// order.
func (m *Mc) Providers() []mc.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]mc.Provider, 0, len(m.providers))
	for _, p := range m.providers {
		out = append(out, p)
	}
	return out
}

// Loaders returns a snapshot of every seeded loader, in no particular
// order.
func (m *Mc) Loaders() []mc.Loader {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]mc.Loader, 0, len(m.loaders))
	for _, l := range m.loaders {
		out = append(out, l)
	}
	return out
}

// FindProviderID resolves a provider's name to its ID among the entries
// currently seeded in m, not from the global template table.
func (m *Mc) FindProviderID(name string) (mc.ProviderID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, p := range m.providers {
		if strings.EqualFold(p.Name, name) {
			return id, true
		}
	}
	return mc.ProviderUnknown, false
}

// FindProviderName resolves a seeded provider's ID to its name.
func (m *Mc) FindProviderName(id mc.ProviderID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.providers[id]
	if !ok {
		return "", false
	}
	return p.Name, true
}

// FindLoaderID resolves a seeded loader's name to its ID.
func (m *Mc) FindLoaderID(name string) (mc.LoaderID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, l := range m.loaders {
		if strings.EqualFold(l.Name, name) {
			return id, true
		}
	}
	return mc.LoaderUnknown, false
}

// FindLoaderName resolves a seeded loader's ID to its name.
func (m *Mc) FindLoaderName(id mc.LoaderID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.loaders[id]
	if !ok {
		return "", false
	}
	return l.Name, true
}

// FindFamilyCode resolves a wire slug to the seeded family's Codename.
func (m *Mc) FindFamilyCode(slug string) (mc.Codename, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for code := range m.families {
		if strings.EqualFold(code.Slug(), slug) {
			return code, true
		}
	}
	return mc.CodenameUnknown, false
}

// FindFamilySlug resolves a seeded family's Codename to its wire slug.
func (m *Mc) FindFamilySlug(code mc.Codename) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.families[code]; !ok {
		return "", false
	}
	return code.Slug(), true
}

// LatestForCodename returns the newest version string in the seeded family
// identified by code.
func (m *Mc) LatestForCodename(code mc.Codename) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vf, ok := m.families[code]
	if !ok {
		return "", false
	}
	return vf.Latest()
}

// CodenameFromVersionIn resolves version to the Codename of whichever seeded
// family's Versions list contains it verbatim. It is a linear scan over
// every seeded family, not a prefix lookup: a family missing an entry for
// version never matches, even if a sibling patch of the same minor does.
func (m *Mc) CodenameFromVersionIn(version string) mc.Codename {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for code, vf := range m.families {
		for _, v := range vf.Versions {
			if v == version {
				return code
			}
		}
	}
	return mc.CodenameUnknown
}

// SetCurrentProviderByID clones the seeded provider with id and makes it
// the current selection.
func (m *Mc) SetCurrentProviderByID(id mc.ProviderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.providers[id]
	if !ok {
		return errkind.New(errkind.NotFound, "provider not seeded")
	}
	clone := p.Clone()
	m.currentProvider = &clone
	return nil
}

// SetCurrentProvider clones p directly and makes it the current selection,
// without requiring p to already be seeded (used when a caller constructs
// an ad hoc provider, e.g. from config overrides).
func (m *Mc) SetCurrentProvider(p mc.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := p.Clone()
	m.currentProvider = &clone
}

// CurrentProvider returns a clone of the current provider selection.
func (m *Mc) CurrentProvider() (mc.Provider, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.currentProvider == nil {
		return mc.Provider{}, false
	}
	return m.currentProvider.Clone(), true
}

// SetCurrentLoaderByID clones the seeded loader with id and makes it the
// current selection.
func (m *Mc) SetCurrentLoaderByID(id mc.LoaderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.loaders[id]
	if !ok {
		return errkind.New(errkind.NotFound, "loader not seeded")
	}
	clone := l.Clone()
	m.currentLoader = &clone
	return nil
}

// SetCurrentLoader clones l directly and makes it the current selection.
func (m *Mc) SetCurrentLoader(l mc.Loader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := l.Clone()
	m.currentLoader = &clone
}

// CurrentLoader returns a clone of the current loader selection.
func (m *Mc) CurrentLoader() (mc.Loader, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.currentLoader == nil {
		return mc.Loader{}, false
	}
	return m.currentLoader.Clone(), true
}

// SetCurrentVersionFamilyByID clones the seeded family with code and makes
// it the current selection.
func (m *Mc) SetCurrentVersionFamilyByID(code mc.Codename) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vf, ok := m.families[code]
	if !ok {
		return errkind.New(errkind.NotFound, "version family not seeded")
	}
	clone := vf.Clone()
	m.currentFamily = &clone
	return nil
}

// SetCurrentVersionFamily clones vf directly and makes it the current
// selection.
func (m *Mc) SetCurrentVersionFamily(vf mc.VersionFamily) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := vf.Clone()
	m.currentFamily = &clone
}

// CurrentVersionFamily returns a clone of the current family selection.
func (m *Mc) CurrentVersionFamily() (mc.VersionFamily, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.currentFamily == nil {
		return mc.VersionFamily{}, false
	}
	return m.currentFamily.Clone(), true
}
