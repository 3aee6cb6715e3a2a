// Package mc holds the four domain entities every other mcpkg component is
// built from: Provider, Loader, VersionFamily, and Digest.
package mc

import "strings"

// ProviderID identifies a remote or local source of mod metadata.
type ProviderID int32

const (
	ProviderUnknown ProviderID = iota
	ProviderModrinth
	ProviderCurseForge
	ProviderHangar
	ProviderLocal
)

var providerNames = map[ProviderID]string{
	ProviderUnknown:    "unknown",
	ProviderModrinth:   "modrinth",
	ProviderCurseForge: "curseforge",
	ProviderHangar:     "hangar",
	ProviderLocal:      "local",
}

// String returns the canonical lowercase name for id.
func (id ProviderID) String() string {
	if s, ok := providerNames[id]; ok {
		return s
	}
	return "unknown"
}

// ProviderIDFromString maps a case-insensitive name to its ProviderID.
// Unknown names map to (ProviderUnknown, false).
func ProviderIDFromString(name string) (ProviderID, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for id, n := range providerNames {
		if n == lower {
			return id, id != ProviderUnknown
		}
	}
	return ProviderUnknown, false
}

// LoaderID identifies a mod-loading runtime.
type LoaderID int32

const (
	LoaderUnknown LoaderID = iota
	LoaderVanilla
	LoaderForge
	LoaderFabric
	LoaderQuilt
	LoaderPaper
	LoaderPurpur
	LoaderVelocity
)

var loaderNames = map[LoaderID]string{
	LoaderUnknown:  "unknown",
	LoaderVanilla:  "vanilla",
	LoaderForge:    "forge",
	LoaderFabric:   "fabric",
	LoaderQuilt:    "quilt",
	LoaderPaper:    "paper",
	LoaderPurpur:   "purpur",
	LoaderVelocity: "velocity",
}

// String returns the canonical lowercase name for id.
func (id LoaderID) String() string {
	if s, ok := loaderNames[id]; ok {
		return s
	}
	return "unknown"
}

// LoaderIDFromString maps a case-insensitive name to its LoaderID.
func LoaderIDFromString(name string) (LoaderID, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for id, n := range loaderNames {
		if n == lower {
			return id, id != LoaderUnknown
		}
	}
	return LoaderUnknown, false
}

// Codename is a Minecraft version-family marketing name (e.g. "Tricky
// Trials"). The mapping to/from its wire slug is total and bijective over
// the enumerated set; any unrecognized slug maps to Unknown.
type Codename int32

const (
	CodenameUnknown Codename = iota
	CodenameClassic
	CodenameIndev
	CodenameInfdev
	CodenameAlpha
	CodenameBeta
	CodenameAdventureUpdate
	CodenamePrettyScaryUpdate
	CodenameRedstoneUpdate
	CodenameWorldOfColorUpdate
	CodenameCombatUpdate
	CodenameFrostburnUpdate
	CodenameExplorationUpdate
	CodenameUpdateAquatic
	CodenameVillageAndPillage
	CodenameBuzzyBees
	CodenameNetherUpdate
	CodenameCavesAndCliffsPart1
	CodenameCavesAndCliffsPart2
	CodenameWildUpdate
	CodenameTrailsAndTales
	CodenameTrickyTrials
)

var codenameSlugs = map[Codename]string{
	CodenameUnknown:             "unknown",
	CodenameClassic:             "classic",
	CodenameIndev:               "indev",
	CodenameInfdev:              "infdev",
	CodenameAlpha:               "alpha",
	CodenameBeta:                "beta",
	CodenameAdventureUpdate:     "adventure_update",
	CodenamePrettyScaryUpdate:   "pretty_scary_update",
	CodenameRedstoneUpdate:      "redstone_update",
	CodenameWorldOfColorUpdate:  "world_of_color_update",
	CodenameCombatUpdate:        "combat_update",
	CodenameFrostburnUpdate:     "frostburn_update",
	CodenameExplorationUpdate:   "exploration_update",
	CodenameUpdateAquatic:       "update_aquatic",
	CodenameVillageAndPillage:   "village_and_pillage",
	CodenameBuzzyBees:           "buzzy_bees",
	CodenameNetherUpdate:        "nether_update",
	CodenameCavesAndCliffsPart1: "caves_and_cliffs_part_1",
	CodenameCavesAndCliffsPart2: "caves_and_cliffs_part_2",
	CodenameWildUpdate:          "wild_update",
	CodenameTrailsAndTales:      "trails_and_tales",
	CodenameTrickyTrials:        "tricky_trials",
}

// Slug returns the wire slug for c.
func (c Codename) Slug() string {
	if s, ok := codenameSlugs[c]; ok {
		return s
	}
	return "unknown"
}

// CodenameFromSlug maps a wire slug to its Codename. Unknown slugs map to
// (CodenameUnknown, false).
func CodenameFromSlug(slug string) (Codename, bool) {
	lower := strings.ToLower(strings.TrimSpace(slug))
	for c, s := range codenameSlugs {
		if s == lower {
			return c, c != CodenameUnknown
		}
	}
	return CodenameUnknown, false
}
