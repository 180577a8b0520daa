package attachment_test

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deliverkit/pkg/attachment"
)

type part struct {
	field, filename, contentType string
	data                         []byte
}

func buildMultipart(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, p := range parts {
		if p.filename == "" {
			require.NoError(t, w.WriteField(p.field, string(p.data)))
			continue
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.Boundary()
}

func TestReadParts(t *testing.T) {
	t.Parallel()

	body, boundary := buildMultipart(t,
		part{field: "file_b", filename: "b.txt", contentType: "text/plain", data: []byte("bbb")},
		part{field: "recipient", data: []byte("client@example.com")},
		part{field: "a", filename: "logo.png", data: pngBytes},
		part{field: "empty", filename: "empty.bin", contentType: "application/pdf"},
	)

	files, values, err := attachment.ReadParts(multipart.NewReader(body, boundary), 1<<20)
	require.NoError(t, err)
	require.Equal(t, "client@example.com", values.Get("recipient"))

	require.Len(t, files, 3)
	require.Equal(t, "file_b", files[0].FieldName, "stream order is kept")
	require.Equal(t, "b.txt", files[0].OriginalName)
	require.Equal(t, "text/plain", files[0].MimeType)
	require.Equal(t, int64(3), files[0].Size)

	require.Equal(t, "a", files[1].FieldName)
	require.Equal(t, "image/png", files[1].MimeType, "missing content type is sniffed")
	require.Equal(t, pngBytes, files[1].Data)

	require.Equal(t, "empty", files[2].FieldName)
	require.Empty(t, files[2].Data)
	require.Equal(t, int64(0), files[2].Size)
}

func TestReadParts_TooLarge(t *testing.T) {
	t.Parallel()

	body, boundary := buildMultipart(t,
		part{field: "f1", filename: "big.bin", contentType: "application/octet-stream", data: bytes.Repeat([]byte("x"), 11)},
	)

	_, _, err := attachment.ReadParts(multipart.NewReader(body, boundary), 10)
	require.ErrorIs(t, err, attachment.ErrFileTooLarge)
}

func TestReadParts_NoLimit(t *testing.T) {
	t.Parallel()

	body, boundary := buildMultipart(t,
		part{field: "f1", filename: "big.bin", contentType: "application/octet-stream", data: bytes.Repeat([]byte("x"), 4096)},
	)

	files, _, err := attachment.ReadParts(multipart.NewReader(body, boundary), 0)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, int64(4096), files[0].Size)
}

func TestReadParts_Malformed(t *testing.T) {
	t.Parallel()

	_, _, err := attachment.ReadParts(multipart.NewReader(bytes.NewBufferString("garbage"), "nope"), 0)
	require.ErrorIs(t, err, attachment.ErrReadFile)
}

func TestFromForm(t *testing.T) {
	t.Parallel()

	body, boundary := buildMultipart(t,
		part{field: "z", filename: "z.txt", contentType: "text/plain", data: []byte("z")},
		part{field: "a", filename: "a1.txt", contentType: "text/plain", data: []byte("a1")},
		part{field: "a", filename: "a2.txt", contentType: "text/plain", data: []byte("a2")},
	)
	form, err := multipart.NewReader(body, boundary).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files, err := attachment.FromForm(form, 0)
	require.NoError(t, err)
	require.Len(t, files, 3)
	require.Equal(t, "a1.txt", files[0].OriginalName)
	require.Equal(t, "a2.txt", files[1].OriginalName)
	require.Equal(t, "z.txt", files[2].OriginalName)
	require.Equal(t, []byte("a2"), files[1].Data)

	_, err = attachment.FromForm(form, 1)
	require.ErrorIs(t, err, attachment.ErrFileTooLarge)
}

func TestFromForm_Empty(t *testing.T) {
	t.Parallel()

	files, err := attachment.FromForm(nil, 0)
	require.NoError(t, err)
	require.Nil(t, files)
}
