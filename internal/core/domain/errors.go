package domain

import "errors"

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrFileRecordNotFound is an error thrown when no file record matches the id
var ErrFileRecordNotFound = errors.New("file record not found")

// ErrEmptyFile is an error thrown when the uploaded file is missing or has no content
var ErrEmptyFile = errors.New("file is required")

// ErrInvalidImage is an error thrown when the uploaded content cannot be decoded as an image
var ErrInvalidImage = errors.New("invalid image")
