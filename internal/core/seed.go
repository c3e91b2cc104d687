package core

// DefaultProducts is the starter catalog a seeded session begins with.
// IDs are assigned when the session is created.
var DefaultProducts = []Product{
	{Name: "Мука пшеничная", Code: "MK-001", Unit: "кг"},
	{Name: "Сахар белый", Code: "SG-002", Unit: "кг"},
	{Name: "Молоко 3.2%", Code: "ML-003", Unit: "л"},
}
