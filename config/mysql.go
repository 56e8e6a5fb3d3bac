package config

import "fmt"

// MySQL connection settings.
type MySQL struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	Charset  string `json:"charset" yaml:"charset"`
}

// Dsn builds the go-sql-driver dsn. clientFoundRows makes an UPDATE that
// leaves a value unchanged still report the matched row, which the counter
// statements depend on.
func (m *MySQL) Dsn() string {
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local&clientFoundRows=true",
		m.Username, m.Password, m.Host, m.Port, m.Database, charset)
}
