package utils

import (
	"github.com/alpacahq/gopaca/env"
)

// Dev returns true if gofund is in development mode
func Dev() bool {
	return env.GetVar("FIRM_MODE") == "DEV"
}

// Stg returns true if gofund is in staging mode
func Stg() bool {
	return env.GetVar("FIRM_MODE") == "STG"
}

// Prod returns true if gofund is in production mode
func Prod() bool {
	return env.GetVar("FIRM_MODE") == "PROD"
}

var (
	Sha1hash string
	Version  string = "dev"
)
