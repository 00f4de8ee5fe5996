package graphql

// Category is the coarse outline bucket a declaration is shown under.
type Category string

const (
	CategoryClass     Category = "class"
	CategoryEnum      Category = "enum"
	CategoryInterface Category = "interface"
	CategoryConstant  Category = "constant"
	CategoryStruct    Category = "struct"
)

var kindCategories = map[Kind]Category{
	KindType:      CategoryClass,
	KindEnum:      CategoryEnum,
	KindUnion:     CategoryInterface,
	KindInterface: CategoryInterface,
	KindScalar:    CategoryConstant,
	KindInput:     CategoryStruct,
}

// CategoryOf maps a declaration kind to its outline category. Unknown kinds are classes.
func CategoryOf(k Kind) Category {
	if c, ok := kindCategories[k]; ok {
		return c
	}
	return CategoryClass
}
