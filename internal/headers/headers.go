package headers

import (
	"maps"
	"slices"
	"strings"
)

// Headers is a set of HTTP headers. Keys keep the case they were received in,
// lookups ignore case.
type Headers map[string]string

// Get resolves name case-insensitively. An exact lowercase key wins, otherwise
// the first matching key in sorted order is used.
func (h Headers) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	if value, ok := h[name]; ok {
		return value, true
	}

	for _, key := range slices.Sorted(maps.Keys(h)) {
		if strings.ToLower(key) == name {
			return h[key], true
		}
	}

	return "", false
}

func (h Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Set stores value under the lowercase form of name, replacing any key that
// differs only in case.
func (h Headers) Set(name string, value string) {
	h.Delete(name)
	h[strings.ToLower(name)] = value
}

func (h Headers) Delete(name string) {
	for key := range h {
		if strings.EqualFold(key, name) {
			delete(h, key)
		}
	}
}

func (h Headers) Clone() Headers {
	clone := make(Headers, len(h))
	maps.Copy(clone, h)
	return clone
}

// Default returns the headers every protocol request except capability
// discovery has to carry.
func Default() Headers {
	return Headers{
		TusResumable: ProtocolVersion,
	}
}
