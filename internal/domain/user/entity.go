package user

// User represents a user record in the system.
type User struct {
	ID   string // ID is assigned by the persistence layer and never changes
	Name string // Name is the display name of the user
	Age  int    // Age in years
}

// Patch carries the fields supplied to a partial update.
// A nil field was not supplied and is left untouched.
type Patch struct {
	Name *string
	Age  *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil
}

// Apply returns a copy of u with the supplied fields replaced.
func (p Patch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	return u
}
