package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoCredentials is returned when no credentials file was configured.
var ErrNoCredentials = errors.New("no credentials file configured")

// Credentials is the persistence credentials file.
//
//	database:
//	  host: db.example.org
//	  port: 3306
//	  user: mpip
//	  password: secret
//	  dbname: experiments
//	  charset: utf8mb4
type Credentials struct {
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds the MySQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Charset  string `yaml:"charset"`
}

// LoadCredentials reads and validates a YAML credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	if path == "" {
		return nil, ErrNoCredentials
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	db := &creds.Database
	if db.Host == "" || db.User == "" || db.DBName == "" {
		return nil, fmt.Errorf("credentials file %s: database host, user and dbname are required", path)
	}
	if db.Port == 0 {
		db.Port = 3306
	}
	if db.Charset == "" {
		db.Charset = "utf8mb4"
	}
	return &creds, nil
}

// DSN returns the go-sql-driver/mysql data source name.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
		d.Charset,
	)
}
