// Package storage persists attachment payloads once a deliverable's files
// have been bound.
//
// Storage is implemented by S3Storage, for any S3-compatible bucket, and by
// MemoryStorage for local runs and tests:
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "deliverables",
//		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
//		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
//	})
//
//	info, err := storage.PutBytes(ctx, store, att.File.Data, att.Name,
//		storage.WithTenant(projectID),
//		storage.WithPrefix("attachments"),
//		storage.WithValidation(storage.NotEmpty(), storage.MaxSize(25<<20)),
//	)
//
// Generated keys have the form "{tenant}/{prefix}/{ulid}{ext}" with the
// extension taken from the sniffed content type. Validation failures are
// returned as *FileValidationError; everything else maps onto the sentinel
// errors in errors.go.
//
// Links to stored files are presigned by default:
//
//	link, err := store.URL(ctx, info.Key, storage.WithExpiry(time.Hour), storage.WithDownload(att.Name))
//
// Config carries env tags without a prefix; cmd/server parses it with
// envPrefix "STORAGE_", so STORAGE_BUCKET, STORAGE_REGION and so on.
package storage
