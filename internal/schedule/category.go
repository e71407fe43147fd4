package schedule

import "strings"

// Category is not stored by the backend; it is inferred from the name.
type Category string

const (
	CategoryWater     Category = "water"
	CategoryFertilise Category = "fertilise"
	CategoryMist      Category = "mist"
	CategoryAll       Category = "all"
)

// categoryMarkers are checked in order; the first hit wins.
var categoryMarkers = []struct {
	substr   string
	category Category
}{
	{"fertil", CategoryFertilise},
	{"mist", CategoryMist},
	{"water", CategoryWater},
}

// InferCategory maps a reminder name to its care category.
func InferCategory(name string) Category {
	lower := strings.ToLower(name)
	for _, m := range categoryMarkers {
		if strings.Contains(lower, m.substr) {
			return m.category
		}
	}
	return CategoryAll
}
