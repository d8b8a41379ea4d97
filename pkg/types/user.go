// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// User is the profile of a mock-authenticated user. It never carries a
// password; this is the value persisted under the local session key.
type User struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	ORCID  string `json:"orcidId" yaml:"orcid_id"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// NotificationPrefs holds the user's notification toggles.
type NotificationPrefs struct {
	NewCitations    bool `json:"newCitations" yaml:"new_citations"`
	NewPublications bool `json:"newPublications" yaml:"new_publications"`
	NewFollowers    bool `json:"newFollowers" yaml:"new_followers"`
	RelatedPapers   bool `json:"relatedPapers" yaml:"related_papers"`
	EmailDigest     bool `json:"emailDigest" yaml:"email_digest"`
}

// DefaultNotificationPrefs returns the preferences a new user starts with.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{
		NewCitations:    true,
		NewPublications: true,
		NewFollowers:    true,
		RelatedPapers:   false,
		EmailDigest:     true,
	}
}
