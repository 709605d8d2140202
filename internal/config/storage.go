package config

// StorageConfig holds the image blob-store (S3/MinIO) settings.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string // base URL served to clients, e.g. a CDN front
}

// LoadStorage reads blob-store settings from the environment.
func LoadStorage() StorageConfig {
	return StorageConfig{
		Endpoint:  GetEnv("S3_ENDPOINT", "localhost:9000"),
		AccessKey: GetEnv("S3_ACCESS_KEY", "minioadmin"),
		SecretKey: GetEnv("S3_SECRET_KEY", "minioadmin"),
		Bucket:    GetEnv("S3_BUCKET", "esm-images"),
		Region:    GetEnv("S3_REGION", "us-east-1"),
		UseSSL:    GetEnv("S3_USE_SSL", "false") == "true",
		PublicURL: GetEnv("S3_PUBLIC_URL", ""),
	}
}
