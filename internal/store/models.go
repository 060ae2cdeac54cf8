package store

import "fmt"

// Person is someone who can hold a role.
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Label is how people are listed by the search endpoint; the id in
// parentheses is what the page extracts on selection.
func (p Person) Label() string {
	return fmt.Sprintf("%s (%d)", p.Name, p.ID)
}

type Email struct {
	Address  string `json:"address"`
	PersonID int64  `json:"person_id"`
	Primary  bool   `json:"primary"`
}

type Area struct {
	ID      int64  `json:"id"`
	Acronym string `json:"acronym"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
}

// Director is an area director with their primary address.
type Director struct {
	PersonID int64  `json:"person_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Slide is one presentation in a meeting session, ordered by Position.
type Slide struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Group     string `json:"group"`
	Meeting   string `json:"meeting"`
	Position  int    `json:"position"`
	UpdatedAt int64  `json:"updated_at"`
}
