// Package catalog holds the immutable seed data the kernel consumes:
// ingredients, quality variants, suppliers, supplier offers, and recipes.
// Catalogs are built once via Load and are read-only thereafter; nothing
// in the rest of the kernel mutates a Catalog.
package catalog

// Catalog is the validated, immutable seed data for one simulation.
type Catalog struct {
	ingredients     map[string]Ingredient
	qualityVariants map[string]QualityVariant // keyed by QualityVariant.ID()
	suppliers       map[string]Supplier
	offers          map[string]SupplierOffer // keyed by SupplierOffer.Key()
	offersByIngredient map[string][]SupplierOffer
	recipes         map[string]Recipe
}

// Load validates and assembles a Catalog from already-deserialized rows.
// The kernel is agnostic to the file format the host loaded them from:
// this function only sees Go structs.
func Load(ingredients []Ingredient, variants []QualityVariant, recipes []Recipe, suppliers []Supplier, offers []SupplierOffer) (*Catalog, error) {
	c := &Catalog{
		ingredients:        make(map[string]Ingredient, len(ingredients)),
		qualityVariants:    make(map[string]QualityVariant, len(variants)),
		suppliers:          make(map[string]Supplier, len(suppliers)),
		offers:             make(map[string]SupplierOffer, len(offers)),
		offersByIngredient: make(map[string][]SupplierOffer),
		recipes:            make(map[string]Recipe, len(recipes)),
	}

	for _, ing := range ingredients {
		if ing.ID == "" {
			return nil, newError("ingredient missing id")
		}
		if _, exists := c.ingredients[ing.ID]; exists {
			return nil, newError("duplicate ingredient id %s", ing.ID)
		}
		if ing.ShelfLifeDays <= 0 {
			return nil, newError("ingredient %s has non-positive shelf life", ing.ID)
		}
		c.ingredients[ing.ID] = ing
	}

	for _, sup := range suppliers {
		valid, err := newSupplier(sup)
		if err != nil {
			return nil, err
		}
		if _, exists := c.suppliers[valid.ID]; exists {
			return nil, newError("duplicate supplier id %s", valid.ID)
		}
		c.suppliers[valid.ID] = valid
	}

	for _, v := range variants {
		valid, err := newQualityVariant(v)
		if err != nil {
			return nil, err
		}
		if _, ok := c.ingredients[valid.BaseIngredientID]; !ok {
			return nil, newError("quality variant references unknown ingredient %s", valid.BaseIngredientID)
		}
		if valid.SupplierID != "" {
			if _, ok := c.suppliers[valid.SupplierID]; !ok {
				return nil, newError("quality variant references unknown supplier %s", valid.SupplierID)
			}
		}
		id := valid.ID()
		if _, exists := c.qualityVariants[id]; exists {
			return nil, newError("duplicate quality variant %s", id)
		}
		c.qualityVariants[id] = valid
	}

	for _, o := range offers {
		valid, err := newSupplierOffer(o)
		if err != nil {
			return nil, err
		}
		if _, ok := c.ingredients[valid.IngredientID]; !ok {
			return nil, newError("supplier offer references unknown ingredient %s", valid.IngredientID)
		}
		if _, ok := c.suppliers[valid.SupplierID]; !ok {
			return nil, newError("supplier offer references unknown supplier %s", valid.SupplierID)
		}
		key := valid.Key()
		if _, exists := c.offers[key]; exists {
			return nil, newError("duplicate supplier offer %s", key)
		}
		c.offers[key] = valid
		c.offersByIngredient[valid.IngredientID] = append(c.offersByIngredient[valid.IngredientID], valid)
	}

	for _, r := range recipes {
		valid, err := newRecipe(r, c.ingredients)
		if err != nil {
			return nil, err
		}
		if _, exists := c.recipes[valid.ID]; exists {
			return nil, newError("duplicate recipe id %s", valid.ID)
		}
		c.recipes[valid.ID] = valid
	}

	return c, nil
}

func (c *Catalog) Ingredient(id string) (Ingredient, bool) {
	ing, ok := c.ingredients[id]
	return ing, ok
}

func (c *Catalog) Supplier(id string) (Supplier, bool) {
	s, ok := c.suppliers[id]
	return s, ok
}

func (c *Catalog) QualityVariant(ingredientID string, level int, rangeTag, supplierID string) (QualityVariant, bool) {
	v := QualityVariant{BaseIngredientID: ingredientID, QualityLevel: level, RangeTag: rangeTag, SupplierID: supplierID}
	qv, ok := c.qualityVariants[v.ID()]
	return qv, ok
}

// VariantForLevel finds the quality variant registered for the given
// ingredient and level, regardless of range tag/supplier — used by the
// costing engine, which only needs the cost multiplier for a level. When
// more than one variant matches (distinct range tags/suppliers at the same
// level), the one with the lexicographically smallest (RangeTag,
// SupplierID) wins, so the result never depends on map iteration order.
func (c *Catalog) VariantForLevel(ingredientID string, level int) (QualityVariant, bool) {
	var best QualityVariant
	found := false
	for _, v := range c.qualityVariants {
		if v.BaseIngredientID != ingredientID || v.QualityLevel != level {
			continue
		}
		if !found || v.RangeTag < best.RangeTag || (v.RangeTag == best.RangeTag && v.SupplierID < best.SupplierID) {
			best = v
			found = true
		}
	}
	return best, found
}

func (c *Catalog) Recipe(id string) (Recipe, bool) {
	r, ok := c.recipes[id]
	return r, ok
}

func (c *Catalog) Recipes() map[string]Recipe {
	return c.recipes
}

// OffersFor returns all offers for an ingredient, in no particular order;
// callers needing deterministic order (procurement scoring) sort explicitly.
func (c *Catalog) OffersFor(ingredientID string) []SupplierOffer {
	offers := c.offersByIngredient[ingredientID]
	out := make([]SupplierOffer, len(offers))
	copy(out, offers)
	return out
}
