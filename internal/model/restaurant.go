package model

// RestaurantInfo holds the single-row restaurant profile: contact
// details, opening hours and map coordinates. The site has exactly one
// location, so the table contains one row that staff can update.
//
// Hours maps a lowercase weekday name ("monday"..."sunday") to a display
// string such as "17:00 - 23:00" or "Closed".
type RestaurantInfo struct {
	Name        string            `json:"name"`        // restaurant_info.name
	Address     string            `json:"address"`     // restaurant_info.address
	Phone       string            `json:"phone"`       // restaurant_info.phone
	Email       string            `json:"email"`       // restaurant_info.email
	Hours       map[string]string `json:"hours"`       // restaurant_info.hours (JSON column)
	Coordinates Coordinates       `json:"coordinates"` // restaurant_info.lat / .lng
}

// Coordinates is a WGS84 point for the map embed on the contact page.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
