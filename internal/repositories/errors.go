package repositories

import "errors"

// ErrNotFound is returned by every repository when the requested record does
// not exist. Implementations translate their driver's not-found condition
// (gorm.ErrRecordNotFound, mongo.ErrNoDocuments, zero rows affected, an
// unparseable object id) into this sentinel so callers never see a driver
// error for a missing record.
var ErrNotFound = errors.New("record not found")
