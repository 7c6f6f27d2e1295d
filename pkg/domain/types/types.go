package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	// URLHash is the hex encoded MD5 digest of a repository URL. It is only an
	// opaque index for badge and per-repo lookups.
	URLHash string

	RequestID string

	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
	GitHubToken         string

	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string

	// APIKey is a shared secret passed as query parameter (reputation upstream,
	// /repos endpoint)
	APIKey string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x URLHash) String() string { return string(x) }

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }

func (x APIKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x APIKey) String() string {
	return "***********"
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}
