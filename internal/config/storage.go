package config

import "github.com/JaimeStill/portfolio-admin/pkg/storage"

var storageEnv = &storage.Env{
	Backend:       "STORAGE_BACKEND",
	BasePath:      "STORAGE_BASE_PATH",
	PublicURL:     "STORAGE_PUBLIC_URL",
	MaxUploadSize: "STORAGE_MAX_UPLOAD_SIZE",
	S3Endpoint:    "STORAGE_S3_ENDPOINT",
	S3AccessKey:   "STORAGE_S3_ACCESS_KEY",
	S3SecretKey:   "STORAGE_S3_SECRET_KEY",
	S3Region:      "STORAGE_S3_REGION",
	S3UseSSL:      "STORAGE_S3_USE_SSL",
}
