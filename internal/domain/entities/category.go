package entities

// Category represents a service category (photographers, DJs, venues, ...)
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
