package entity

// SelectorKind indica el modo de direccionamiento de un producto.
type SelectorKind int

const (
	SelectByID SelectorKind = iota + 1
	SelectBySKU
	SelectByName
)

// Selector identifica un producto por id interno, SKU o nombre. Se construye
// una sola vez en el borde HTTP; los tres modos deben resolver a la misma fila
// cuando apuntan al mismo producto lógico.
type Selector struct {
	Kind  SelectorKind
	Value string
}

// ByID selecciona por id interno.
func ByID(id string) Selector { return Selector{Kind: SelectByID, Value: id} }

// BySKU selecciona por código SKU.
func BySKU(sku string) Selector { return Selector{Kind: SelectBySKU, Value: sku} }

// ByName selecciona por nombre de producto.
func ByName(name string) Selector { return Selector{Kind: SelectByName, Value: name} }
