package service

// ImageStore is the external collaborator holding uploaded image files.
// Uploads land in a temporary store first; committing a reference moves the
// file into the permanent post-image store. The on-disk layout is the store's
// own concern.
type ImageStore interface {
	// EnsureStaged fails when no staged file with the name exists in the
	// temporary store.
	EnsureStaged(name string) error

	// CommitPostImage moves a staged file into the permanent post-image store.
	CommitPostImage(name string) error
}
