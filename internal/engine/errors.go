package engine

import (
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/keynote/internal/engine/document"
)

// Errors returned by session operations.
var (
	// ErrRange indicates replace or selection arguments outside the document.
	ErrRange = document.ErrRange

	// ErrNoMatch indicates a find or replace that had nothing to act on.
	// Session methods report it as false or zero; hosts that need an error
	// return it.
	ErrNoMatch = errors.Base("no matches found")

	// ErrEmptyDocument indicates a save was attempted with no content.
	ErrEmptyDocument = errors.Base("no content to save")

	// ErrNameRequired indicates a save was attempted without a file name.
	ErrNameRequired = errors.Base("file name required")
)
