package models

import "time"

type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Timezone    string     `json:"timezone"`
	PairID      *string    `json:"pair_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Label returns the display name, falling back to the name
func (u User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

// InPair reports whether the user currently belongs to a pair
func (u User) InPair() bool {
	return u.PairID != nil && *u.PairID != ""
}

// Pair links at most two users through an invite code
type Pair struct {
	ID         string    `json:"id"`
	Members    []string  `json:"members"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// Partner returns the other member of the pair, if any
func (p Pair) Partner(userID string) (string, bool) {
	for _, id := range p.Members {
		if id != userID {
			return id, true
		}
	}
	return "", false
}

func (p Pair) HasMember(userID string) bool {
	for _, id := range p.Members {
		if id == userID {
			return true
		}
	}
	return false
}
