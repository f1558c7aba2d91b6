package tui

import "errors"

// ErrMissingSession is returned when no editor session is provided.
var ErrMissingSession = errors.New("tui: editor session is required")

// ErrMissingFileID is returned when no file identifier is provided.
var ErrMissingFileID = errors.New("tui: file id is required")
