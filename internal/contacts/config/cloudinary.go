package config

// CloudinaryConfig представляет учетные данные медиахостинга.
type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name" env:"CONTACTS_CLOUDINARY_NAME" env-default:""`
	APIKey    string `yaml:"api_key" env:"CONTACTS_CLOUDINARY_API_KEY" env-default:""`
	APISecret string `yaml:"api_secret" env:"CONTACTS_CLOUDINARY_API_SECRET" env-default:""`
	Folder    string `yaml:"folder" env:"CONTACTS_CLOUDINARY_FOLDER" env-default:"contacts"`
}
