package memory

import (
	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
)

const (
	OwnerIDRoyalStrikers = "own-royal-strikers"
	OwnerIDCoastalKings  = "own-coastal-kings"
	OwnerIDMetroChargers = "own-metro-chargers"
	OwnerIDHarborHurlers = "own-harbor-hurlers"
)

func SeedOwners() []owner.Owner {
	return []owner.Owner{
		{ID: OwnerIDRoyalStrikers, TeamName: "Royal Strikers", TotalPoints: 10000, RemainingPoints: 10000},
		{ID: OwnerIDCoastalKings, TeamName: "Coastal Kings", TotalPoints: 10000, RemainingPoints: 10000},
		{ID: OwnerIDMetroChargers, TeamName: "Metro Chargers", TotalPoints: 10000, RemainingPoints: 10000},
		{ID: OwnerIDHarborHurlers, TeamName: "Harbor Hurlers", TotalPoints: 10000, RemainingPoints: 10000},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "plr-pl-01", Name: "Arjun Mehta", Category: player.CategoryPlatinum, Skill: player.SkillBatsman, BasePrice: 500, Status: player.StatusAvailable},
		{ID: "plr-pl-02", Name: "Dylan Carter", Category: player.CategoryPlatinum, Skill: player.SkillAllRounder, BasePrice: 500, Status: player.StatusAvailable},
		{ID: "plr-pl-03", Name: "Ishan Rawal", Category: player.CategoryPlatinum, Skill: player.SkillBowler, BasePrice: 500, Status: player.StatusAvailable},
		{ID: "plr-gd-01", Name: "Farhan Qureshi", Category: player.CategoryGold, Skill: player.SkillBatsman, BasePrice: 300, Status: player.StatusAvailable},
		{ID: "plr-gd-02", Name: "Liam Okafor", Category: player.CategoryGold, Skill: player.SkillBowler, BasePrice: 300, Status: player.StatusAvailable},
		{ID: "plr-gd-03", Name: "Sanjay Pillai", Category: player.CategoryGold, Skill: player.SkillWicketKeeper, BasePrice: 300, Status: player.StatusAvailable},
		{ID: "plr-sl-01", Name: "Rohit Bansal", Category: player.CategorySilver, Skill: player.SkillBatsman, BasePrice: 150, Status: player.StatusAvailable},
		{ID: "plr-sl-02", Name: "Kieran Walsh", Category: player.CategorySilver, Skill: player.SkillBowler, BasePrice: 150, Status: player.StatusAvailable},
		{ID: "plr-br-01", Name: "Tanvir Hossain", Category: player.CategoryBronze, Skill: player.SkillAllRounder, BasePrice: 50, Status: player.StatusAvailable},
		{ID: "plr-br-02", Name: "Omar Siddiqui", Category: player.CategoryBronze, Skill: player.SkillBowler, BasePrice: 50, Status: player.StatusAvailable},
	}
}

// SeedAuctionState is the idle singleton row a fresh deployment starts
// from; Postgres deployments get the same row from a migration.
func SeedAuctionState() auction.State {
	return auction.State{ID: "live", Version: 1}
}
