package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/snuhangout/api/pkg/jwt"
)

func main() {
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to the signing private key")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to write the public key with -keygen")
	keygen := flag.Bool("keygen", false, "Generate a new key pair and exit")
	netID := flag.String("user", "ab123", "Campus net id; the token's user id is user:<net id>")
	domain := flag.String("domain", "snu.edu.in", "Email domain for the token")
	issuer := flag.String("issuer", "snu-idp", "JWT issuer")
	expMins := flag.Int("exp", 60*24, "Token expiration in minutes (default: 1 day)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *keygen {
		if err := os.MkdirAll(filepath.Dir(*privateKeyPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating key directory: %v\n", err)
			os.Exit(1)
		}
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
		fmt.Printf("Point AUTH_PUBLIC_KEY_PATH at %s to accept dev tokens.\n", *publicKeyPath)
		return
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate a key pair first with: dev-token -keygen\n")
		os.Exit(1)
	}

	id := strings.TrimPrefix(*netID, "user:")
	claims := jwt.Claims{
		Subject: id,
		UserID:  "user:" + id,
		Email:   id + "@" + strings.TrimPrefix(*domain, "@"),
	}

	token, err := jwtService.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   int(jwtService.GetExpiration().Seconds()),
			"user_id":      claims.UserID,
			"email":        claims.Email,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	expTime := time.Now().Add(jwtService.GetExpiration())
	fmt.Println("Dev Token Generated")
	fmt.Println("===================")
	fmt.Printf("User ID:  %s\n", claims.UserID)
	fmt.Printf("Email:    %s\n", claims.Email)
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/dating/profile\n", token[:50]+"...")
}
