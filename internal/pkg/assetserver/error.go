package assetserver

import "errors"

var errNotAFile = errors.New("not found or not a file")
