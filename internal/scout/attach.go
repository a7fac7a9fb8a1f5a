package scout

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// MaxAttachmentSize caps a single uploaded file (original bytes).
	MaxAttachmentSize = 5 << 20
	// MaxAttachmentTotal is the soft cap on the combined payload per
	// owning entity, enforced at write time.
	MaxAttachmentTotal = 15 << 20
)

var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
}

// AttachmentError is returned for any upload the validator refuses. It is
// a result, not a failure: callers report it to the user and leave the
// collection untouched.
type AttachmentError struct {
	Code    string // too_large, total_exceeded, bad_type, bad_data
	Message string
}

func (e *AttachmentError) Error() string { return e.Message }

// ValidateAttachment checks a candidate upload against the per-file and
// per-entity limits. existing is the collection it would join.
func ValidateAttachment(a Attachment, existing []Attachment) error {
	if !allowedAttachmentTypes[a.Type] {
		return &AttachmentError{
			Code:    "bad_type",
			Message: fmt.Sprintf("unsupported attachment type %q", a.Type),
		}
	}
	if a.Size <= 0 {
		return &AttachmentError{Code: "bad_data", Message: "attachment size must be positive"}
	}
	if a.Size > MaxAttachmentSize {
		return &AttachmentError{
			Code:    "too_large",
			Message: fmt.Sprintf("attachment %q is %d bytes, limit is %d", a.Name, a.Size, MaxAttachmentSize),
		}
	}
	if !validBase64(a.Data) {
		return &AttachmentError{Code: "bad_data", Message: "attachment data is not valid base64"}
	}

	total := a.Size
	for _, e := range existing {
		total += e.Size
	}
	if total > MaxAttachmentTotal {
		return &AttachmentError{
			Code:    "total_exceeded",
			Message: fmt.Sprintf("attachment payload would reach %d bytes, limit is %d", total, MaxAttachmentTotal),
		}
	}
	return nil
}

func validBase64(data string) bool {
	if data == "" {
		return false
	}
	// Tolerate data URLs the client forgot to strip.
	if i := strings.Index(data, ","); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+1:]
	}
	_, err := base64.StdEncoding.DecodeString(data)
	return err == nil
}
