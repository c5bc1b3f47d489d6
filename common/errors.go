package common

import (
	"errors"
)

var ErrFileNotFound = errors.New("file not found")
var ErrNotAsset = errors.New("not an image or video asset")
var ErrPathOutsideRoot = errors.New("path resolves outside of the asset root")
var ErrMissingCredentials = errors.New("missing storage credentials")
var ErrInvalidConfig = errors.New("invalid configuration")
var ErrUnknownDatastore = errors.New("unknown datastore type")
