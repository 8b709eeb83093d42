package model

// Photo is one gallery image shown on the site.
type Photo struct {
	ID       uint64 `json:"id"`       // photos.id
	URL      string `json:"url"`      // photos.url
	Caption  string `json:"caption"`  // photos.caption
	Category string `json:"category"` // photos.category (interior, food, events, ...)
}
