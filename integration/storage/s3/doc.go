// Package s3 implements storage.Store on Amazon S3 and S3-compatible
// services (MinIO, Wasabi, Spaces) using the AWS SDK v2.
//
//	store, err := s3.New(ctx, s3.Config{
//		Bucket:         "incidents",
//		Region:         "us-east-1",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	})
//
// SDK failures are mapped onto the storage package errors, so callers can
// test for storage.ErrFileNotFound or storage.ErrAccessDenied regardless of
// the backend.
package s3
