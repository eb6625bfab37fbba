package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/pkg/errors"
)

// FormField is a plain multipart field.
type FormField struct {
	Name  string
	Value string
}

// FormFile is a file part of a multipart body.
type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Multipart is a multipart/form-data request body.
type Multipart struct {
	Fields []FormField
	Files  []FormFile
}

func (m *Multipart) encode() (reader io.Reader, contentType string, err error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, f := range m.Files {
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.Field), escapeQuotes(f.Filename)))
		h.Set("Content-Type", ct)

		var part io.Writer
		part, err = writer.CreatePart(h)
		if err != nil {
			err = errors.Wrapf(err, "failed to create form file %s", f.Field)
			return reader, contentType, err
		}

		_, err = io.Copy(part, f.Content)
		if err != nil {
			err = errors.Wrapf(err, "failed to copy form file %s", f.Filename)
			return reader, contentType, err
		}
	}

	for _, f := range m.Fields {
		err = writer.WriteField(f.Name, f.Value)
		if err != nil {
			err = errors.Wrapf(err, "failed to write form field %s", f.Name)
			return reader, contentType, err
		}
	}

	err = writer.Close()
	if err != nil {
		err = errors.Wrap(err, "failed to close multipart writer")
		return reader, contentType, err
	}

	reader = buf
	contentType = writer.FormDataContentType()
	return reader, contentType, err
}

func escapeQuotes(s string) (escaped string) {
	escaped = strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
	return escaped
}
