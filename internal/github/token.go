package github

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ResolveAuthToken resolves a GitHub access token for remote matrix fetches.
//
// Precedence:
//  1. GITHUB_TOKEN env var
//  2. GitHub CLI: `gh auth token`
//
// Both sources may be absent; an empty token is a valid result since public
// repositories do not need one. The token is never printed.
func ResolveAuthToken(ctx context.Context) (string, error) {
	if env := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); env != "" {
		return env, nil
	}
	return tokenFromGitHubCLI(ctx)
}

func tokenFromGitHubCLI(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", nil
	}

	// Bounded so a broken gh credential helper cannot hang the run.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, "gh", "auth", "token", "-h", "github.com").Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// gh installed but not logged in: treat as no token.
		return "", nil
	}

	tok := strings.TrimSpace(string(out))
	if strings.ContainsAny(tok, " \t\n\r") {
		return "", nil
	}
	return tok, nil
}
