package document

import "errors"

var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentAlreadyExists = errors.New("document already exists")
	ErrInvalidField          = errors.New("invalid document field")
)
