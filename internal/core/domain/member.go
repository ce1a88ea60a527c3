package domain

import (
	"errors"
	"time"
)

var ErrMemberNotFound = errors.New("member not found")
var ErrTagNotFound = errors.New("tag not found")

// Member is a system member as reported by the upstream tracking API,
// optionally enriched with locally stored tags and status.
type Member struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name,omitempty"`
	Pronouns    string        `json:"pronouns,omitempty"`
	Color       string        `json:"color,omitempty"`
	Description string        `json:"description,omitempty"`
	AvatarURL   string        `json:"avatar_url,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Status      *MemberStatus `json:"status,omitempty"`
}

// MemberStatus is a short free-text status attached to a member, akin to a
// messenger presence line.
type MemberStatus struct {
	Text      string    `json:"text"`
	Emoji     string    `json:"emoji,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fronters is the set of members currently in front, together with the
// switch timestamp reported upstream.
type Fronters struct {
	Timestamp time.Time `json:"timestamp"`
	Members   []Member  `json:"members"`
}

// Switch is one historical front change, used for insight computations.
type Switch struct {
	Timestamp time.Time `json:"timestamp"`
	MemberIDs []string  `json:"members"`
}
