package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/config"
)

// DSN renders cfg as a keyword/value connection string understood by both
// lib/pq and pgx.
func DSN(cfg *config.DatabaseConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode,
	)
}
