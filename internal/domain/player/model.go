package player

import "time"

type Category string

const (
	CategoryPlatinum Category = "platinum"
	CategoryGold     Category = "gold"
	CategorySilver   Category = "silver"
	CategoryBronze   Category = "bronze"
)

var AllCategories = map[Category]struct{}{
	CategoryPlatinum: {},
	CategoryGold:     {},
	CategorySilver:   {},
	CategoryBronze:   {},
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusUnsold    Status = "unsold"
)

type SkillRole string

const (
	SkillBatsman      SkillRole = "batsman"
	SkillBowler       SkillRole = "bowler"
	SkillAllRounder   SkillRole = "all_rounder"
	SkillWicketKeeper SkillRole = "wicket_keeper"
)

// Player is one entry in the auction pool. BasePrice seeds the opening bid
// when the player goes under the hammer; Status tracks the pool lifecycle
// (available -> active -> sold/unsold, unsold players may re-enter).
type Player struct {
	ID        string
	Name      string
	Category  Category
	Skill     SkillRole
	BasePrice int64
	Status    Status
	CreatedAt time.Time
}
