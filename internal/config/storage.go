package config

type StorageConfig struct {
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Region:          getEnv("AWS_REGION", "us-east-1"),
		Bucket:          getEnv("AWS_BUCKET_NAME", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}
}
