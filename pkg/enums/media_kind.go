package enums

import "fmt"

// MediaKind selects the disk directory and public URL prefix for an upload.
type MediaKind string

const (
	MediaKindProduct  MediaKind = "product"
	MediaKindCategory MediaKind = "category"
	MediaKindBrand    MediaKind = "brand"
	MediaKindPoster   MediaKind = "poster"
	MediaKindUsers    MediaKind = "users"
	MediaKindGeneral  MediaKind = "general"
)

var validMediaKinds = []MediaKind{
	MediaKindProduct,
	MediaKindCategory,
	MediaKindBrand,
	MediaKindPoster,
	MediaKindUsers,
	MediaKindGeneral,
}

// String implements fmt.Stringer.
func (m MediaKind) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MediaKind.
func (m MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMediaKind converts raw input into a MediaKind.
func ParseMediaKind(value string) (MediaKind, error) {
	for _, candidate := range validMediaKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media kind %q", value)
}
