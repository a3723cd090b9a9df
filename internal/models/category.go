package models

// CategoryName is a member of the fixed category catalog.
type CategoryName string

const (
	CategoryHealth   CategoryName = "HEALTH"
	CategoryWork     CategoryName = "WORK"
	CategoryLearning CategoryName = "LEARNING"
	CategoryHome     CategoryName = "HOME"
	CategoryFinance  CategoryName = "FINANCE"
	CategorySocial   CategoryName = "SOCIAL"
	CategoryHobby    CategoryName = "HOBBY"
)

// CategoryCatalog is the fixed, pre-seeded set of categories.
var CategoryCatalog = []CategoryName{
	CategoryHealth,
	CategoryWork,
	CategoryLearning,
	CategoryHome,
	CategoryFinance,
	CategorySocial,
	CategoryHobby,
}

// IsCategory reports whether name belongs to the catalog.
func IsCategory(name string) bool {
	for _, c := range CategoryCatalog {
		if string(c) == name {
			return true
		}
	}
	return false
}

type Category struct {
	ID   uint64       `gorm:"primarykey" json:"id"`
	Name CategoryName `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
}
