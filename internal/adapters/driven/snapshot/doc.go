// Package snapshot stores fragment snapshot images in an S3-compatible
// bucket (MinIO in deployment) and hands out presigned links to them.
package snapshot
