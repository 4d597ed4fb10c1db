package types

// Image points at an uploaded media file.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}
