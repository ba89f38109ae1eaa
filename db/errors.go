package db

import "fmt"

// Common errors
var (
	ErrNotConfigured      = fmt.Errorf("database not configured")
	ErrDatabaseConnection = fmt.Errorf("database connection error")
)
