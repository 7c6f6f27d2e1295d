package model

import (
	"bytes"
	"crypto/md5" // #nosec G501 -- used as an opaque index, not for security
	"encoding/hex"
	"encoding/json"
	"net/url"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Event is a single deployment fact. It is written once and never mutated.
type Event struct {
	DateReceived       time.Time     `json:"date_received" bigquery:"date_received"`
	DateSent           string        `json:"date_sent,omitempty" bigquery:"date_sent"`
	RepositoryURL      string        `json:"repository_url,omitempty" bigquery:"repository_url"`
	RepositoryURLHash  types.URLHash `json:"repository_url_hash,omitempty" bigquery:"repository_url_hash"`
	CodeVersion        string        `json:"code_version,omitempty" bigquery:"code_version"`
	ApplicationName    string        `json:"application_name,omitempty" bigquery:"application_name"`
	ApplicationVersion string        `json:"application_version,omitempty" bigquery:"application_version"`
	SpaceID            string        `json:"space_id,omitempty" bigquery:"space_id"`
	ApplicationURIs    []string      `json:"application_uris,omitempty" bigquery:"application_uris"`
}

// TrackInput is the set of fields a client may submit. Anything else in the
// request body is dropped on decode.
type TrackInput struct {
	DateSent           string     `json:"date_sent,omitempty"`
	RepositoryURL      string     `json:"repository_url,omitempty"`
	CodeVersion        string     `json:"code_version,omitempty"`
	ApplicationName    string     `json:"application_name,omitempty"`
	ApplicationVersion string     `json:"application_version,omitempty"`
	SpaceID            string     `json:"space_id,omitempty"`
	ApplicationURIs    StringList `json:"application_uris,omitempty"`
}

// StringList accepts either a single JSON string or an array of strings.
type StringList []string

func (x *StringList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*x = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*x = StringList{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return goerr.Wrap(err, "application_uris must be a string or an array of strings")
	}
	*x = list
	return nil
}

// DecodeTrackInput parses a JSON submission. An empty body or a JSON null is
// rejected with ErrBadRequest.
func DecodeTrackInput(raw []byte) (*TrackInput, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, goerr.Wrap(types.ErrBadRequest, "empty body")
	}

	var input *TrackInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, goerr.Wrap(types.ErrBadRequest, "malformed JSON body", goerr.V("error", err.Error()))
	}
	if input == nil {
		return nil, goerr.Wrap(types.ErrBadRequest, "null body")
	}

	return input, nil
}

// TrackInputFromForm builds a submission from a form-encoded body.
func TrackInputFromForm(form url.Values) (*TrackInput, error) {
	if len(form) == 0 {
		return nil, goerr.Wrap(types.ErrBadRequest, "empty form")
	}

	var uris StringList
	for _, v := range form["application_uris"] {
		if v != "" {
			uris = append(uris, v)
		}
	}

	return &TrackInput{
		DateSent:           form.Get("date_sent"),
		RepositoryURL:      form.Get("repository_url"),
		CodeVersion:        form.Get("code_version"),
		ApplicationName:    form.Get("application_name"),
		ApplicationVersion: form.Get("application_version"),
		SpaceID:            form.Get("space_id"),
		ApplicationURIs:    uris,
	}, nil
}

// NewEvent stamps the receive time and derives the URL hash.
func NewEvent(input *TrackInput, now time.Time) (*Event, error) {
	if input == nil {
		return nil, goerr.Wrap(types.ErrBadRequest, "no event body")
	}

	event := &Event{
		DateReceived:       now.UTC().Truncate(time.Millisecond),
		DateSent:           input.DateSent,
		RepositoryURL:      input.RepositoryURL,
		CodeVersion:        input.CodeVersion,
		ApplicationName:    input.ApplicationName,
		ApplicationVersion: input.ApplicationVersion,
		SpaceID:            input.SpaceID,
	}
	if len(input.ApplicationURIs) > 0 {
		event.ApplicationURIs = append([]string{}, input.ApplicationURIs...)
	}
	if event.RepositoryURL != "" {
		event.RepositoryURLHash = HashURL(event.RepositoryURL)
	}

	return event, nil
}

// HashURL returns the hex encoded MD5 digest of url.
func HashURL(url string) types.URLHash {
	sum := md5.Sum([]byte(url)) // #nosec G401
	return types.URLHash(hex.EncodeToString(sum[:]))
}
