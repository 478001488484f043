package docs

import "errors"

var (
	// ErrVersionNotFound signals that no version could be selected because the store is empty.
	ErrVersionNotFound = errors.New("version not found")
	// ErrPageNotFound signals that the requested slug has no visible page in the resolved version and tab.
	ErrPageNotFound = errors.New("page not found")
	// ErrInvalidContent signals a content tree that violates a load-time invariant.
	ErrInvalidContent = errors.New("invalid content")
	// ErrInvalidPath signals a URL path outside the /docs surface.
	ErrInvalidPath = errors.New("invalid docs path")
	// ErrBlockNotFound signals a block index outside the page content or a block that is not code.
	ErrBlockNotFound = errors.New("code block not found")
)
