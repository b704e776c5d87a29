package icons

import (
	"regexp"
	"strconv"
)

// Icon render URLs end in .../<signature>/<id>.png.
var iconURLPattern = regexp.MustCompile(`/([^/]+)/([0-9]+)\.png$`)

// Identity is the stable identity extracted from an icon URL.
type Identity struct {
	ID        int
	Signature string
}

// Parse extracts the icon identity from a render URL. A URL that does not
// match the pattern (or an empty URL) is not an error: entities may have no
// icon.
func Parse(url string) (Identity, bool) {
	match := iconURLPattern.FindStringSubmatch(url)
	if match == nil {
		return Identity{}, false
	}

	id, err := strconv.Atoi(match[2])
	if err != nil {
		return Identity{}, false
	}

	return Identity{ID: id, Signature: match[1]}, true
}
