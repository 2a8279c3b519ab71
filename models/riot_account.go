package models

import (
	"time"
)

// RiotAccountLink is a pending Riot account link created by the RSO flow
type RiotAccountLink struct {
	AuthCode  string    `json:"authCode" db:"auth_code"`
	PUUID     string    `json:"puuid" db:"puuid"`
	GameName  string    `json:"gameName" db:"game_name"`
	TagLine   string    `json:"tagLine" db:"tag_line"`
	Region    *string   `json:"region" db:"region"`
	UserID    *string   `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
