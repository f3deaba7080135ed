package parking

import "strings"

// Car is identified only by its registration number and color. Both are
// lowercased on construction so every lookup is case-insensitive.
type Car struct {
	RegNo string
	Color string
}

func NewCar(regNo, color string) Car {
	return Car{
		RegNo: normalize(regNo),
		Color: normalize(color),
	}
}

func normalize(s string) string {
	return strings.ToLower(s)
}
