package asf

// searchResponse is the ASF SearchAPI GeoJSON FeatureCollection shape,
// trimmed to the properties the lookup pipeline consumes.
type searchResponse struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string     `json:"type"`
	Properties properties `json:"properties"`
}

type properties struct {
	SceneName       string   `json:"sceneName"`
	Platform        string   `json:"platform"`
	StartTime       string   `json:"startTime"`
	StopTime        string   `json:"stopTime"`
	FlightDirection string   `json:"flightDirection"`
	Polarization    string   `json:"polarization"`
	BeamModeType    string   `json:"beamModeType"`
	Orbit           *int     `json:"orbit"`
	PathNumber      *int     `json:"pathNumber"`
	Browse          []string `json:"browse"`
}
