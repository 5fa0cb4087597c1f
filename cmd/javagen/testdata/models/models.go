package models

// Point is a position on a grid.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}
