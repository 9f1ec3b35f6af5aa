package entity

import (
	"encoding/json"
	"path"
	"time"
)

// ImageType tags what kind of owner an image record belongs to.
type ImageType string

const (
	// ImageTypePost marks an image attached to a post.
	ImageTypePost ImageType = "post"
)

// PostImagePublicPrefix is the URL prefix under which committed post images
// are served.
const PostImagePublicPrefix = "/public/posts"

// Image is a stored file reference attached to a post. Path holds the stored
// file name relative to the image store; the public URL is derived at read
// time from the type tag.
type Image struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	Order     int       `json:"order"` // Display order within the owning post.
	Type      ImageType `json:"type"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicPath rewrites the stored relative path into the public URL path the
// image is served under, based on its type tag.
func (i *Image) PublicPath() string {
	if i.Type == ImageTypePost {
		return path.Join(PostImagePublicPrefix, i.Path)
	}

	return i.Path
}

// MarshalJSON serializes the image with its public URL in the path field.
// Clients never see the stored file name.
func (i Image) MarshalJSON() ([]byte, error) {
	type plain Image
	out := plain(i)
	out.Path = i.PublicPath()

	return json.Marshal(out)
}
