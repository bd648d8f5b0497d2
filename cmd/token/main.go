package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/config"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/token"
)

// Mints a service token for the protected API endpoints.
func main() {
	subject := flag.String("subject", "ops-cli", "token subject, recorded in the sub claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	tokenService := token.NewTokenService(cfg.Token.Secret)
	signed, expiresAt, err := tokenService.Generate(*subject, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(signed)
	fmt.Fprintf(os.Stderr, "subject=%s expires=%s\n", *subject, time.Unix(expiresAt, 0).Format(time.RFC3339))
}
