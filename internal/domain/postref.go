package domain

import (
	"fmt"
	"strings"

	"github.com/compmotifs/likeminds/pkg/errors"
)

const (
	// CollectionPost is the record collection holding feed posts.
	CollectionPost = "app.bsky.feed.post"
	// CollectionLike is the record collection holding like records.
	CollectionLike = "app.bsky.feed.like"

	profileURLPrefix = "https://bsky.app/profile/"
)

// PostRef locates a record inside an account's repository. It is the parsed
// form of an at:// URI: owning repo (DID), collection type, and record key.
type PostRef struct {
	Repo       string
	Collection string
	RKey       string
}

// ParseURI parses an at:// URI into its repo, collection and rkey parts.
func ParseURI(uri string) (PostRef, error) {
	rest, ok := strings.CutPrefix(uri, "at://")
	if !ok {
		return PostRef{}, errors.Wrap(errors.ErrInvalidReference, fmt.Sprintf("not an at:// URI: %q", uri))
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return PostRef{}, errors.Wrap(errors.ErrInvalidReference, fmt.Sprintf("malformed at:// URI: %q", uri))
	}
	return PostRef{Repo: parts[0], Collection: parts[1], RKey: parts[2]}, nil
}

// ParsePostURL parses a canonical bsky.app viewing URL
// (https://bsky.app/profile/{handleOrDID}/post/{rkey}). The repo part may be
// a handle; callers resolve it before building an at:// URI.
func ParsePostURL(url string) (PostRef, error) {
	rest, ok := strings.CutPrefix(url, profileURLPrefix)
	if !ok {
		return PostRef{}, errors.Wrap(errors.ErrInvalidReference, fmt.Sprintf("not a bsky.app post URL: %q", url))
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "post" || parts[0] == "" || parts[2] == "" {
		return PostRef{}, errors.Wrap(errors.ErrInvalidReference, fmt.Sprintf("malformed post URL: %q", url))
	}
	return PostRef{Repo: parts[0], Collection: CollectionPost, RKey: parts[2]}, nil
}

// URI renders the reference back into at:// form.
func (r PostRef) URI() string {
	return "at://" + r.Repo + "/" + r.Collection + "/" + r.RKey
}

// URL derives the canonical viewing URL for the referenced post.
func (r PostRef) URL() string {
	return profileURLPrefix + r.Repo + "/post/" + r.RKey
}

// IsPost reports whether the reference points into the post collection.
func (r PostRef) IsPost() bool {
	return r.Collection == CollectionPost
}
