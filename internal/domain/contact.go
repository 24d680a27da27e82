package domain

// Contact is an ownership-scoped record: only the account recorded as
// OwnerID may read or mutate it. OwnerID is immutable after creation.
type Contact struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Favorite bool
	OwnerID  string
}
