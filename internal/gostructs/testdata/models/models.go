package models

import "time"

// User is a registered account.
type User struct {
	ID        int64
	Name      string `json:"name"`
	Email     *string
	Active    bool
	Addr      Address   `json:"address"`
	Tags      []string  `json:"tags,omitempty"`
	Scores    map[string]int
	Avatar    []byte
	CreatedAt time.Time
	Status    Status
	password  string
	Secret    string `json:"-"`
}

// Address is where a user lives.
type Address struct {
	// Street includes the house number.
	Street string
	City   string // city name
}

type Status string

type audit struct {
	UpdatedBy string
	Revision  uint32
}

type Order struct {
	audit
	Items    []*Item
	Total    float64
	Metadata any
}

type Item struct {
	SKU      string
	Quantity int32
	Price    *float64
}

type notExported struct {
	X int
}
