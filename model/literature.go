// model/literature.go
package model

import "time"

// LiteratureRecord is the metadata attached 1:1 to a token at mint time.
// Title is globally unique (exact, case-sensitive match). IsVerified only
// ever transitions false -> true.
type LiteratureRecord struct {
	TokenID    int64     `json:"token_id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Year       int       `json:"year"`
	Category   string    `json:"category"`
	WorkType   string    `json:"work_type"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// Literature joins a token with its record, the shape read endpoints return.
type Literature struct {
	Token
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	Category   string `json:"category"`
	WorkType   string `json:"work_type"`
	IsVerified bool   `json:"is_verified"`
}
