package models

import "errors"

// ErrInvalidInquiry marks a malformed inbound inquiry (missing required
// field, unparseable batch row). Surfaced to the submitter as a rejected
// item, never as a pipeline failure.
var ErrInvalidInquiry = errors.New("invalid inquiry")
