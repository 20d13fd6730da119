package domain

// Bundle is one purchasable data bundle as shown in the mini-app.
type Bundle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Catalog groups bundles by network name.
type Catalog map[string][]Bundle
