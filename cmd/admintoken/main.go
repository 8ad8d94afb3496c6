// Command admintoken mints a staff JWT for the admin API. Tokens are
// handed out manually; there is no admin login endpoint.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mapcocoro/soleil-backend/pkg/auth"
	"github.com/mapcocoro/soleil-backend/pkg/config"
)

func main() {
	_ = godotenv.Load()

	adminID := flag.String("admin-id", "", "admin UUID (defaults to a fresh one)")
	name := flag.String("name", "", "admin display name")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "missing -name")
		os.Exit(1)
	}

	id := uuid.New()
	if *adminID != "" {
		parsed, err := uuid.Parse(*adminID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -admin-id: %v\n", err)
			os.Exit(1)
		}
		id = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.MintAdminToken(cfg.Admin, time.Now(), auth.AdminTokenPayload{
		AdminID: id,
		Name:    *name,
		JTI:     uuid.NewString(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to mint token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("admin_id:", id)
	fmt.Println("expires in:", time.Duration(cfg.Admin.ExpirationMinutes)*time.Minute)
	fmt.Println(token)
}
