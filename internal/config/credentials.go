package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Credentials identify the hosting-API account used to create remote repos.
type Credentials struct {
	User  string
	Token string
}

// Empty reports whether either half of the credential pair is missing.
func (c Credentials) Empty() bool {
	return c.User == "" || c.Token == ""
}

// ResolveCredentials returns hosting credentials with flag values taking
// precedence over the config file, which takes precedence over the
// GITHUB_USER / GITHUB_TOKEN environment variables. A .env file in the
// config directory is loaded first so ambient lookup happens exactly once,
// here at the boundary; the core stages only ever see the resolved pair.
func ResolveCredentials(flagUser, flagToken string) Credentials {
	_ = godotenv.Load(filepath.Join(Dir(), ".env"))

	user := flagUser
	if user == "" {
		user = GetDefault(KeyGitHubUser, os.Getenv("GITHUB_USER"))
	}
	token := flagToken
	if token == "" {
		token = GetDefault(KeyGitHubToken, os.Getenv("GITHUB_TOKEN"))
	}
	return Credentials{User: user, Token: token}
}
