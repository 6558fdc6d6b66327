package user

// CreateUserRequest represents the request payload for creating a new user.
// Fields carry the values as decoded from JSON; nil means absent or null.
type CreateUserRequest struct {
	Name any
	Age  any
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	User User
}

// UpdateUserRequest represents the request payload for updating an existing user.
// Only non-nil fields are applied.
type UpdateUserRequest struct {
	ID   string
	Name any
	Age  any
}

// UpdateUserResponse represents the response payload after updating a user.
type UpdateUserResponse struct {
	User User
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID string
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID   string
	Name string
	Age  int
}
