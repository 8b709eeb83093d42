package model

// Menu categories and dietary tags are fixed vocabularies; the handlers
// expose them so clients never have to hardcode the lists.
var (
	MenuCategories = []string{"appetizers", "mains", "desserts", "drinks"}
	DietaryTags    = []string{"vegetarian", "vegan", "gluten-free"}
)

// MenuItem is a dish or drink on the published menu.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the item.
//  Description – short menu copy.
//  Price       – price in US dollars.
//  Category    – one of MenuCategories.
//  DietaryTags – subset of DietaryTags, stored comma separated.
//  ImageURL    – optional photo of the dish.
//  Featured    – shown on the home page when true.
type MenuItem struct {
	ID          uint64   `json:"id"`          // menu_items.id
	Name        string   `json:"name"`        // menu_items.name
	Description string   `json:"description"` // menu_items.description
	Price       float64  `json:"price"`       // menu_items.price
	Category    string   `json:"category"`    // menu_items.category
	DietaryTags []string `json:"dietaryTags"` // menu_items.dietary_tags (CSV)
	ImageURL    string   `json:"imageUrl"`    // menu_items.image_url
	Featured    bool     `json:"featured"`    // menu_items.featured
}
