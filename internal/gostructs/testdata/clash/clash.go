package clash

type Clash struct {
	Name  string
	Other string `json:"name"`
}
