package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/cli"
	"github.com/Spencerx/metrics-collector-service/pkg/domain/model"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/gt"
)

func initRepo(t *testing.T, remote string) (string, string) {
	t.Helper()
	dir := t.TempDir()

	repo := gt.R1(git.PlainInit(dir, false)).NoError(t)
	wt := gt.R1(repo.Worktree()).NoError(t)

	gt.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# app\n"), 0600))
	gt.R1(wt.Add("README.md")).NoError(t)
	hash := gt.R1(wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "deployer",
			Email: "deployer@example.com",
			When:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	})).NoError(t)

	gt.R1(repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{remote},
	})).NoError(t)

	return dir, hash.String()
}

func TestAutoDetectGitMetadata(t *testing.T) {
	ctx := context.Background()
	dir, commit := initRepo(t, "git@github.com:acme/app.git")

	t.Run("detect from repository", func(t *testing.T) {
		var input model.TrackInput
		gt.NoError(t, cli.AutoDetectGitMetadata(ctx, dir, &input))
		gt.V(t, input.RepositoryURL).Equal("https://github.com/acme/app")
		gt.V(t, input.CodeVersion).Equal(commit)
	})

	t.Run("detect from sub directory", func(t *testing.T) {
		sub := filepath.Join(dir, "sub")
		gt.NoError(t, os.MkdirAll(sub, 0700))

		var input model.TrackInput
		gt.NoError(t, cli.AutoDetectGitMetadata(ctx, sub, &input))
		gt.V(t, input.CodeVersion).Equal(commit)
	})

	t.Run("preserve existing metadata", func(t *testing.T) {
		input := model.TrackInput{
			RepositoryURL: "https://example.com/custom/repo",
		}
		gt.NoError(t, cli.AutoDetectGitMetadata(ctx, dir, &input))
		gt.V(t, input.RepositoryURL).Equal("https://example.com/custom/repo")
		gt.V(t, input.CodeVersion).Equal(commit)
	})

	t.Run("not a repository", func(t *testing.T) {
		var input model.TrackInput
		gt.Error(t, cli.AutoDetectGitMetadata(ctx, t.TempDir(), &input))
	})
}

func TestNormalizeRemoteURL(t *testing.T) {
	testCases := map[string]string{
		"git@github.com:acme/app.git":           "https://github.com/acme/app",
		"ssh://git@github.com/acme/app.git":     "https://github.com/acme/app",
		"https://github.com/acme/app.git":       "https://github.com/acme/app",
		"https://github.com/acme/app/":          "https://github.com/acme/app",
		"https://hub.jazz.net/git/owner/sample": "https://hub.jazz.net/git/owner/sample",
	}

	for remote, expected := range testCases {
		t.Run(remote, func(t *testing.T) {
			gt.V(t, cli.NormalizeRemoteURL(remote)).Equal(expected)
		})
	}
}

func TestApplyVCAPApplication(t *testing.T) {
	const vcap = `{
		"application_name": "sample-app",
		"name": "ignored",
		"application_version": "b3f5a1c2",
		"space_id": "space-1",
		"application_uris": ["sample-app.mybluemix.net"]
	}`

	t.Run("fill empty fields", func(t *testing.T) {
		var input model.TrackInput
		gt.NoError(t, cli.ApplyVCAPApplication(vcap, &input))
		gt.V(t, input.ApplicationName).Equal("sample-app")
		gt.V(t, input.ApplicationVersion).Equal("b3f5a1c2")
		gt.V(t, input.SpaceID).Equal("space-1")
		gt.A(t, input.ApplicationURIs).Length(1)
	})

	t.Run("flags win", func(t *testing.T) {
		input := model.TrackInput{ApplicationName: "from-flag"}
		gt.NoError(t, cli.ApplyVCAPApplication(vcap, &input))
		gt.V(t, input.ApplicationName).Equal("from-flag")
	})

	t.Run("name fallback", func(t *testing.T) {
		var input model.TrackInput
		gt.NoError(t, cli.ApplyVCAPApplication(`{"name":"legacy"}`, &input))
		gt.V(t, input.ApplicationName).Equal("legacy")
	})

	t.Run("not set", func(t *testing.T) {
		var input model.TrackInput
		gt.NoError(t, cli.ApplyVCAPApplication("", &input))
		gt.V(t, input.ApplicationName).Equal("")
	})

	t.Run("malformed", func(t *testing.T) {
		var input model.TrackInput
		gt.Error(t, cli.ApplyVCAPApplication("{", &input))
	})
}
