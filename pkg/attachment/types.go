package attachment

// FieldType is the kind of a custom form field.
type FieldType string

// Known field types. The binder only acts on TypeAttachment.
const (
	TypeText       FieldType = "text"
	TypeTextarea   FieldType = "textarea"
	TypeNumber     FieldType = "number"
	TypeDate       FieldType = "date"
	TypeSelect     FieldType = "select"
	TypeCheckbox   FieldType = "checkbox"
	TypeAttachment FieldType = "attachment"
)

// MIMEOctetStream is the content type used when neither the upload nor the
// declared attachment provides one.
const MIMEOctetStream = "application/octet-stream"

// CustomField is a caller-defined field on a deliverable or form.
type CustomField struct {
	ID          string       `json:"id,omitempty"`
	Type        FieldType    `json:"type"`
	Label       string       `json:"label,omitempty"`
	Value       any          `json:"value,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a declared file slot in an attachment field. FileID links
// it to an uploaded file; the remaining bind fields are set by the Binder.
type Attachment struct {
	File           *FileData `json:"file,omitempty"`
	ID             string    `json:"id,omitempty"`
	Name           string    `json:"name,omitempty"`
	FileID         string    `json:"fileId,omitempty"`
	Type           string    `json:"type,omitempty"`
	URL            string    `json:"url,omitempty"`
	Key            string    `json:"key,omitempty"`
	TempFileID     string    `json:"tempFileId,omitempty"`
	Size           int64     `json:"size,omitempty"`
	ReadyForUpload bool      `json:"readyForUpload,omitempty"`
	FileNotFound   bool      `json:"fileNotFound,omitempty"`
}

// FileData is the payload spliced into a bound attachment.
type FileData struct {
	Type string `json:"type"`
	Data []byte `json:"-"`
}

// UploadedFile describes one file part of a multipart request.
type UploadedFile struct {
	FieldName    string
	OriginalName string
	MimeType     string
	Data         []byte
	Size         int64
}

// EmptyPayloadPolicy decides what happens when a matched upload has no data.
type EmptyPayloadPolicy int

const (
	// EmptyPayloadAccept logs a warning and still marks the attachment ready
	// for upload. Downstream consumers must reject empty payloads themselves.
	EmptyPayloadAccept EmptyPayloadPolicy = iota
	// EmptyPayloadReject logs a warning and marks the attachment FileNotFound.
	EmptyPayloadReject
)

// Report summarizes one Bind call.
type Report struct {
	// Missing lists the FileIDs with no matching upload, in field order.
	Missing []string
	// Bound counts attachments marked ReadyForUpload.
	Bound int
	// NotFound counts attachments marked FileNotFound.
	NotFound int
	// EmptyPayload counts matched uploads that carried no data.
	EmptyPayload int
}
