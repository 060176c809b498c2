package detect

import "github.com/polyloc/polyloc/internal/langdef"

// basenameIndex and extIndex are built once from langdef.Table so Detect
// never has to walk the whole table per file. extIndex can map to more
// than one Lang per extension (e.g. ".m" is shared by objective-c, matlab,
// octave and limbo); those contested extensions are resolved by the
// disambiguators in disambiguate.go.
var (
	basenameIndex map[string]langdef.Lang
	extIndex      map[string][]langdef.Lang
	hashbangTable []langdef.Lang
)

func init() {
	basenameIndex = make(map[string]langdef.Lang)
	extIndex = make(map[string][]langdef.Lang)

	for _, l := range langdef.Table {
		for _, b := range l.Basenames {
			basenameIndex[b] = l
		}
		for _, s := range l.Suffixes {
			extIndex[s] = append(extIndex[s], l)
		}
		if l.Hashbang != "" {
			hashbangTable = append(hashbangTable, l)
		}
	}
}
