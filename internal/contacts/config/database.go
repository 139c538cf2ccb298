package config

import (
	"fmt"
)

// PostgresConfig представляет конфигурацию подключения к базе данных.
type PostgresConfig struct {
	Host           string `yaml:"host" env:"CONTACTS_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"CONTACTS_POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"CONTACTS_POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"CONTACTS_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `yaml:"database" env:"CONTACTS_POSTGRES_DB" env-default:"contacts"`
	MinConn        int    `yaml:"min_conn" env:"CONTACTS_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int    `yaml:"max_conn" env:"CONTACTS_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"CONTACTS_MIGRATIONS_PATH" env-default:"file://migrations/contacts"`
}

// GetDSN возвращает строку подключения PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает строку подключения в форме URL, используемую
// инструментом миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}
