package models

// Ownable is anything with a single owning user. Posts and comments
// implement it so the ownership-or-superuser permission check can treat
// them uniformly.
type Ownable interface {
	OwnerID() uint
}
