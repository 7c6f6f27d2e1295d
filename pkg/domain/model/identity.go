package model

import "strings"

// Identity is the caller as asserted by the external identity provider.
type Identity struct {
	User   string   `json:"user,omitempty"`
	Emails []string `json:"emails"`
}

// HasEmailDomain reports whether any email ends with one of suffixes
// (case-insensitive). An empty suffix list accepts any authenticated caller.
func (x *Identity) HasEmailDomain(suffixes []string) bool {
	if x == nil {
		return false
	}
	if len(suffixes) == 0 {
		return true
	}

	for _, email := range x.Emails {
		email = strings.ToLower(strings.TrimSpace(email))
		for _, suffix := range suffixes {
			if suffix != "" && strings.HasSuffix(email, strings.ToLower(suffix)) {
				return true
			}
		}
	}
	return false
}
