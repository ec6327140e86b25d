package rowsource

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	gh "matrixci/internal/github"

	"github.com/google/go-github/v81/github"
)

// LoadRemote fetches a pipeline definition from a GitHub repository via the
// contents API and parses it like a local one. repoRef is OWNER/REPO; ref is
// an optional branch, tag, or commit (empty means the default branch).
func LoadRemote(ctx context.Context, client *gh.Client, repoRef, ref string) (*Definition, error) {
	owner, name, ok := strings.Cut(repoRef, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid repository %q: expected OWNER/REPO", repoRef)
	}

	opts := &github.RepositoryContentGetOptions{Ref: ref}
	for _, candidate := range pipelineFileNames {
		file, _, resp, err := client.Client.Repositories.GetContents(ctx, owner, name, candidate, opts)
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetching %s from %s: %w", candidate, repoRef, err)
		}
		if file == nil {
			// A directory with a pipeline file's name; not a definition.
			continue
		}
		content, err := file.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decoding %s from %s: %w", candidate, repoRef, err)
		}
		def, err := parsePipeline([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", candidate, repoRef, err)
		}
		return def, nil
	}

	return nil, fmt.Errorf("%s: %w", repoRef, ErrMissingMatrixDefinition)
}
