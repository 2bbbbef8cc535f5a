package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// DBType selects the SQL dialect the server speaks.
type DBType string

const (
	Postgres DBType = "postgres"
	MySQL    DBType = "mysql"
)

// Config is resolved once at process start and never mutated afterwards.
// Either URL is set, or Database and User are set; URL wins when both are.
type Config struct {
	Type     DBType
	URL      string
	Host     string
	Port     int
	Database string
	User     string
	Password string
	// SSLMode applies to Postgres only; empty means the dialect's default.
	SSLMode string
}

// FromEnv reads the connection settings from the process environment.
// The DB_TYPE value itself is not validated here; an unsupported type
// surfaces on the first connection attempt instead.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Type:     DBType(os.Getenv("DB_TYPE")),
		URL:      os.Getenv("DATABASE_URL"),
		Host:     os.Getenv("DB_HOST"),
		Database: os.Getenv("DB_NAME"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	if portStr := os.Getenv("DB_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT %q: %v", portStr, err)
		}
		cfg.Port = port
	}

	if cfg.Host == "" {
		cfg.Host = "localhost"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the startup invariants: DB_TYPE is always present, and
// either a full URL or enough discrete fields to build one.
func (c *Config) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("DB_TYPE is required (postgres or mysql)")
	}
	if c.URL == "" {
		if c.Database == "" || c.User == "" {
			return fmt.Errorf("either DATABASE_URL or both DB_NAME and DB_USER must be set")
		}
	}
	return nil
}

// Connection is a named entry in the optional connections file, so one
// server binary can be pointed at saved databases with --connection.
type Connection struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type ConnectionsFile struct {
	Connections       map[string]Connection `json:"connections"`
	DefaultConnection string                `json:"default_connection"`
}

// FromConnection resolves a named connection from the connections file into
// a Config. When name is empty the file's default connection is used.
func FromConnection(name string) (*Config, error) {
	file, err := loadConnectionsFile()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = file.DefaultConnection
	}
	conn, ok := file.Connections[name]
	if !ok {
		return nil, fmt.Errorf("connection %q not found in connections file", name)
	}
	if err := validateConnection(name, conn); err != nil {
		return nil, err
	}
	return &Config{Type: DBType(conn.Type), URL: conn.URL, Host: "localhost"}, nil
}

func validateConnection(name string, conn Connection) error {
	if conn.Type != string(Postgres) && conn.Type != string(MySQL) {
		return fmt.Errorf("connection %q: type must be 'postgres' or 'mysql'", name)
	}
	if conn.URL == "" {
		return fmt.Errorf("connection %q: url is required", name)
	}
	return nil
}

func loadConnectionsFile() (*ConnectionsFile, error) {
	for _, path := range connectionsFilePaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read connections file: %v", err)
		}
		var file ConnectionsFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %v", path, err)
		}
		return &file, nil
	}
	return nil, fmt.Errorf("no connections file found")
}

func connectionsFilePaths() []string {
	var paths []string

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			paths = append(paths, filepath.Join(appData, "universal-db-mcp", "connections.json"))
		}
	default:
		if homeDir := os.Getenv("HOME"); homeDir != "" {
			paths = append(paths, filepath.Join(homeDir, ".config", "universal-db-mcp", "connections.json"))
		}
	}

	if pwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(pwd, "connections.json"))
	}

	return paths
}
