package request

import (
	"fmt"
	"mime"
	"net/textproto"
)

// multipartFileHeader builds the MIME header for a file part, defaulting
// to application/octet-stream when the field has no MimeType.
func multipartFileHeader(f MultipartField) textproto.MIMEHeader {
	mimeType := f.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Name, f.FileName))
	h.Set("Content-Type", mimeType)
	return h
}

// validateMimeType is used by callers that accept a caller-supplied MIME
// type for a multipart file field before handing it to MultipartBody.
func validateMimeType(value string) error {
	if value == "" {
		return nil
	}
	_, _, err := mime.ParseMediaType(value)
	return err
}
