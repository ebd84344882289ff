package domain

// Category identifies one product catalog. Each category is stored in
// its own table but all categories share the Product shape.
type Category string

const (
	CategoryCamera    Category = "camera"
	CategoryTeddy     Category = "teddy"
	CategoryFurniture Category = "furniture"
)

// Categories lists every known catalog category.
var Categories = []Category{CategoryCamera, CategoryTeddy, CategoryFurniture}

func (c Category) Valid() bool {
	switch c {
	case CategoryCamera, CategoryTeddy, CategoryFurniture:
		return true
	}
	return false
}

// Plural is the category's plural form, used both as its catalog table
// name and as its URL path segment.
func (c Category) Plural() string {
	switch c {
	case CategoryCamera:
		return "cameras"
	case CategoryTeddy:
		return "teddies"
	case CategoryFurniture:
		return "furniture"
	}
	return ""
}

// TableName returns the catalog table backing this category.
func (c Category) TableName() string {
	return c.Plural()
}

// Label is the category's display form for user-facing messages.
func (c Category) Label() string {
	switch c {
	case CategoryCamera:
		return "Camera"
	case CategoryTeddy:
		return "Teddy"
	case CategoryFurniture:
		return "Furniture"
	}
	return ""
}

// Product is a catalog entry. Records are created and priced by an
// external catalog management process; this system only reads them.
// Image holds a path relative to the image serving root and is rewritten
// to an absolute URL at the query boundary.
type Product struct {
	ID    string  `gorm:"primaryKey;size:24" json:"_id"`
	Name  string  `gorm:"index" json:"name"`
	Price float64 `json:"price"`
	Image string  `gorm:"size:1024" json:"imageUrl"`
}

// IsProductID reports whether s looks like a catalog identifier:
// 24 hexadecimal characters, as issued by the catalog management system.
func IsProductID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
