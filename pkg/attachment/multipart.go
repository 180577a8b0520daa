package attachment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"slices"

	"github.com/dmitrymomot/deliverkit/pkg/storage"
)

// maxFormValueSize caps non-file parts read by ReadParts.
const maxFormValueSize = 1 << 20

// ReadParts consumes a multipart stream and returns its file parts, in
// stream order, along with its plain form values. Files larger than
// maxFileSize fail with ErrFileTooLarge; maxFileSize <= 0 disables the limit.
// A missing part Content-Type is sniffed from the data.
func ReadParts(mr *multipart.Reader, maxFileSize int64) ([]UploadedFile, url.Values, error) {
	var files []UploadedFile
	values := url.Values{}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return files, values, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrReadFile, err)
		}

		if part.FileName() == "" {
			v, err := readLimited(part, maxFormValueSize)
			part.Close()
			if err != nil {
				return nil, nil, fmt.Errorf("%w: field %q: %w", ErrReadFile, part.FormName(), err)
			}
			values.Add(part.FormName(), string(v))
			continue
		}

		data, err := readLimited(part, maxFileSize)
		part.Close()
		if err != nil {
			if errors.Is(err, ErrFileTooLarge) {
				return nil, nil, fmt.Errorf("%w: %s", ErrFileTooLarge, part.FileName())
			}
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrReadFile, part.FileName(), err)
		}

		files = append(files, UploadedFile{
			FieldName:    part.FormName(),
			OriginalName: part.FileName(),
			MimeType:     contentType(part.Header.Get("Content-Type"), data),
			Data:         data,
			Size:         int64(len(data)),
		})
	}
}

// FromForm converts an already parsed multipart form. multipart.Form loses
// part order, so files are returned sorted by field name, keeping the order
// of files sharing a name.
func FromForm(form *multipart.Form, maxFileSize int64) ([]UploadedFile, error) {
	if form == nil || len(form.File) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(form.File))
	for name := range form.File {
		names = append(names, name)
	}
	slices.Sort(names)

	var files []UploadedFile
	for _, name := range names {
		for _, fh := range form.File[name] {
			if maxFileSize > 0 && fh.Size > maxFileSize {
				return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, fh.Filename)
			}
			f, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, fh.Filename, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, fh.Filename, err)
			}
			files = append(files, UploadedFile{
				FieldName:    name,
				OriginalName: fh.Filename,
				MimeType:     contentType(fh.Header.Get("Content-Type"), data),
				Data:         data,
				Size:         fh.Size,
			})
		}
	}
	return files, nil
}

func contentType(declared string, data []byte) string {
	if declared != "" {
		return declared
	}
	if len(data) == 0 {
		return ""
	}
	return storage.DetectMIMEBytes(data)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, ErrFileTooLarge
	}
	return buf.Bytes(), nil
}
