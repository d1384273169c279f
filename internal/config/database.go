// internal/config/database.go
package config

import (
	"fmt"
)

// Storage drivers selectable at process startup. All satisfy the same
// repository contract.
const (
	DriverGorm      = "gorm"
	DriverSQL       = "sql"
	DriverFirestore = "firestore"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func (d *DatabaseConfig) ValidateDriver() error {
	switch d.Driver {
	case DriverGorm, DriverSQL, DriverFirestore:
		return nil
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want %s, %s or %s)",
			d.Driver, DriverGorm, DriverSQL, DriverFirestore)
	}
}
