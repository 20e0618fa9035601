// Package jwt verifies RS256 JSON Web Tokens issued by the campus identity
// provider.
//
// The API only needs the provider's public key:
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PublicKeyPath: "/etc/hangout/idp.pub.pem",
//	    Issuer:        "snu-idp",
//	    Leeway:        30 * time.Second,
//	})
//	claims, err := svc.Validate(token)
//
// Validate rejects any header alg other than RS256, checks exp and nbf
// with the configured leeway, and requires the issuer to match. The
// caller's id is the user_id claim, or sub when user_id is absent.
//
// Sign is available when a private key is configured and is used by the
// dev-token command to mint tokens for local testing.
package jwt
