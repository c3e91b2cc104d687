package core

import (
	"strings"

	"github.com/google/uuid"
)

// RemoveHook is called after a product has been removed from the catalog.
type RemoveHook func(productID string)

// Catalog owns the set of orderable products and enforces code uniqueness.
// It is not safe for concurrent use; Session serializes access.
type Catalog struct {
	products []Product
	byID     map[string]int // product ID -> index in products
	codes    map[string]struct{}
	onRemove []RemoveHook

	newID func() string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byID:  make(map[string]int),
		codes: make(map[string]struct{}),
		newID: uuid.NewString,
	}
}

// OnRemove registers a hook that runs after every successful Remove.
// The ledger cascade is wired through this.
func (c *Catalog) OnRemove(hook RemoveHook) {
	c.onRemove = append(c.onRemove, hook)
}

// Add validates and appends a new product.
// Surrounding whitespace is trimmed from all fields before validation and storage.
func (c *Catalog) Add(name, code, unit string) (Product, error) {
	name, err := requireText(FieldName, name)
	if err != nil {
		return Product{}, err
	}
	code, err = requireText(FieldCode, code)
	if err != nil {
		return Product{}, err
	}
	unit, err = requireText(FieldUnit, unit)
	if err != nil {
		return Product{}, err
	}

	if c.HasCode(code) {
		return Product{}, &DuplicateCodeError{Code: code}
	}

	id := c.newID()
	for c.hasID(id) {
		id = c.newID()
	}

	p := Product{ID: id, Name: name, Code: code, Unit: unit}
	c.byID[id] = len(c.products)
	c.codes[code] = struct{}{}
	c.products = append(c.products, p)
	return p, nil
}

// Remove deletes the product with the given ID and runs the removal hooks.
// Returns false (and runs nothing) if the ID is not in the catalog.
func (c *Catalog) Remove(id string) bool {
	idx, ok := c.byID[id]
	if !ok {
		return false
	}

	removed := c.products[idx]
	c.products = append(c.products[:idx], c.products[idx+1:]...)
	delete(c.byID, id)
	delete(c.codes, removed.Code)
	for i := idx; i < len(c.products); i++ {
		c.byID[c.products[i].ID] = i
	}

	for _, hook := range c.onRemove {
		hook(id)
	}
	return true
}

// Find returns the product with the given ID.
func (c *Catalog) Find(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// HasCode reports whether a product with exactly this code exists.
func (c *Catalog) HasCode(code string) bool {
	_, ok := c.codes[code]
	return ok
}

// List returns all products in insertion order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search returns products whose name or code contains query, ignoring case.
// An empty query returns every product.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}

	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Code), q) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) hasID(id string) bool {
	_, ok := c.byID[id]
	return ok
}
