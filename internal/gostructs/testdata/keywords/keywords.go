package keywords

// Artifact is a published build output.
type Artifact struct {
	Package string
	Default bool `json:"default"`
	Name    string
}
