package cmd

import "time"

// Config carries everything the composition root needs to wire the app.
// Values come from the environment, see cmd/app/main.go.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// ProposalTTL is how long a customer has to answer a substitution
	// proposal before the timeout sweep auto-rejects it. Zero picks the
	// handler default.
	ProposalTTL time.Duration
}
