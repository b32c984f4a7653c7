package domain

// SceneFeature is one acquisition returned by the SAR catalog search.
// StartTime is kept as the catalog's ISO-8601 string: for Sentinel-1
// timestamps lexicographic order is temporal order, which is what the
// scene selection relies on.
type SceneFeature struct {
	SceneName       string   `json:"sceneName"`
	Platform        string   `json:"platform"`
	StartTime       string   `json:"startTime"`
	FlightDirection string   `json:"flightDirection"`
	Polarization    string   `json:"polarization"`
	BeamMode        string   `json:"beamModeType"`
	Orbit           int      `json:"orbit"`
	Browse          []string `json:"browse"`
}

// HasBrowse reports whether the feature carries at least one preview URL.
func (f SceneFeature) HasBrowse() bool {
	return len(f.Browse) > 0
}

// ColorSample is one dominant color extracted from a preview image.
type ColorSample struct {
	Name    string  `json:"name"`
	Palette string  `json:"closestPaletteColor"`
	Hex     string  `json:"hex"`
	Percent float64 `json:"percent"`
}

// Tag is a vision-service label with a 0-100 confidence score.
type Tag struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Coordinate is the caller-supplied query point. No range validation is
// applied; out-of-range values are passed to the catalog verbatim.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SceneMetadata is the bundle embedded in the interpretation prompt and
// echoed back in the response.
type SceneMetadata struct {
	SceneName       string     `json:"sceneName"`
	Platform        string     `json:"platform"`
	Date            string     `json:"date"`
	FlightDirection string     `json:"flightDirection"`
	Polarization    string     `json:"polarization"`
	BeamMode        string     `json:"beamMode"`
	Orbit           int        `json:"orbit"`
	Coordinates     Coordinate `json:"coordinates"`
}

// Interpretation is the final response aggregate for one lookup.
type Interpretation struct {
	ImageURL    string        `json:"imageUrl"`
	Explanation string        `json:"explanation"`
	SceneName   string        `json:"sceneName"`
	ImageTags   []string      `json:"imageTags"`
	ImageColors []ColorSample `json:"imageColors"`
	Metadata    SceneMetadata `json:"metadata"`
}
