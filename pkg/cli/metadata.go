package cli

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
)

// AutoDetectGitMetadata fills repository_url from the origin remote and
// code_version from HEAD of the git repository containing dir. Fields
// already set are kept.
func AutoDetectGitMetadata(ctx context.Context, dir string, input *model.TrackInput) error {
	if input.RepositoryURL != "" && input.CodeVersion != "" {
		return nil
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	if input.CodeVersion == "" {
		head, err := repo.Head()
		if err != nil {
			return goerr.Wrap(err, "failed to get HEAD")
		}
		input.CodeVersion = head.Hash().String()
	}

	if input.RepositoryURL == "" {
		remote, err := repo.Remote("origin")
		if err != nil {
			return goerr.Wrap(err, "failed to get remote origin")
		}
		if len(remote.Config().URLs) == 0 {
			return goerr.New("no remote URL found")
		}
		input.RepositoryURL = NormalizeRemoteURL(remote.Config().URLs[0])
	}

	logging.From(ctx).Debug("detected git metadata",
		"repository_url", input.RepositoryURL,
		"code_version", input.CodeVersion,
	)
	return nil
}

// NormalizeRemoteURL turns a git remote into the browsable https form, e.g.
// git@github.com:owner/repo.git -> https://github.com/owner/repo
func NormalizeRemoteURL(remote string) string {
	u := strings.TrimSpace(remote)

	if rest, ok := strings.CutPrefix(u, "ssh://"); ok {
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		u = "https://" + rest
	} else if at := strings.Index(u, "@"); at >= 0 && !strings.Contains(u, "://") {
		// scp-like syntax: user@host:path
		host, path, found := strings.Cut(u[at+1:], ":")
		if found {
			u = "https://" + host + "/" + strings.TrimPrefix(path, "/")
		}
	}

	u = strings.TrimSuffix(u, "/")
	return strings.TrimSuffix(u, ".git")
}

type vcapApplication struct {
	Name               string   `json:"name"`
	ApplicationName    string   `json:"application_name"`
	ApplicationVersion string   `json:"application_version"`
	SpaceID            string   `json:"space_id"`
	ApplicationURIs    []string `json:"application_uris"`
}

// ApplyVCAPApplication fills application fields from the Cloud Foundry
// VCAP_APPLICATION document. Fields already set are kept.
func ApplyVCAPApplication(raw string, input *model.TrackInput) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var app vcapApplication
	if err := json.Unmarshal([]byte(raw), &app); err != nil {
		return goerr.Wrap(err, "failed to parse VCAP_APPLICATION")
	}

	if input.ApplicationName == "" {
		input.ApplicationName = app.ApplicationName
		if input.ApplicationName == "" {
			input.ApplicationName = app.Name
		}
	}
	if input.ApplicationVersion == "" {
		input.ApplicationVersion = app.ApplicationVersion
	}
	if input.SpaceID == "" {
		input.SpaceID = app.SpaceID
	}
	if len(input.ApplicationURIs) == 0 && len(app.ApplicationURIs) > 0 {
		input.ApplicationURIs = append(model.StringList{}, app.ApplicationURIs...)
	}

	return nil
}
