package db

import (
	"testing"

	"github.com/campusbooks/campusbooks-backend/internal/config"
)

func TestBuildDSN(t *testing.T) {
	base := config.Config{
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "market",
		DBPort:     "3306",
	}

	tests := []struct {
		name string
		mod  func(*config.Config)
		want string
	}{
		{
			"plain host",
			func(c *config.Config) { c.DBHost = "127.0.0.1" },
			"app:secret@tcp(127.0.0.1:3306)/market?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			"host already wrapped",
			func(c *config.Config) { c.DBHost = "tcp(db:3307)" },
			"app:secret@tcp(db:3307)/market?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			"unix socket path",
			func(c *config.Config) { c.DBHost = "/var/run/mysqld/mysqld.sock" },
			"app:secret@unix(/var/run/mysqld/mysqld.sock)/market?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			"cloud sql instance wins",
			func(c *config.Config) {
				c.DBHost = "ignored"
				c.InstanceConnectionName = "proj:region:inst"
			},
			"app:secret@unix(/cloudsql/proj:region:inst)/market?charset=utf8mb4&parseTime=True&loc=Local",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mod(&cfg)
			if got := BuildDSN(&cfg); got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}
