package logfile

import "errors"

var ErrDuplicateHash = errors.New("a log with the same fingerprint already exists")
