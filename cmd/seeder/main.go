package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/config"
	"github.com/mauv0809/rally-stats/internal/database"
	"github.com/mauv0809/rally-stats/internal/query"
	"github.com/mauv0809/rally-stats/internal/service"
)

const (
	numPlayers = 40
	numTests   = 6
)

var (
	firstNames = []string{"Ana", "Ben", "Carla", "Dario", "Elena", "Felix", "Greta", "Hugo", "Ines", "Jonas"}
	lastNames  = []string{"Lopez", "Meyer", "Rossi", "Novak", "Silva", "Berg", "Duarte", "Keller"}
	genders    = []string{string(club.GenderMale), string(club.GenderFemale)}
	hands      = []string{string(club.HandLeft), string(club.HandRight), string(club.HandBoth)}
)

func main() {
	log.Info("Starting database seeder...")
	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	dialect, err := query.DialectFor(cfg.Database.Driver)
	if err != nil {
		log.Fatalf("Failed to select SQL dialect: %s", err)
	}
	services := service.New(service.Deps{Store: club.New(db, dialect), Paging: cfg.Paging})

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	startTime := time.Now()

	playerIDs := make([]string, 0, numPlayers)
	for i := range numPlayers {
		// Ages 6 to 25 span every age group, Seniors included.
		dob := time.Now().AddDate(-6-rng.Intn(20), 0, -rng.Intn(365))
		p, err := services.Players.Create(ctx, service.CreatePlayer{
			Name:          fmt.Sprintf("%s %s", firstNames[i%len(firstNames)], lastNames[rng.Intn(len(lastNames))]),
			DateOfBirth:   dob.Format(time.DateOnly),
			Gender:        genders[rng.Intn(len(genders))],
			PreferredHand: hands[rng.Intn(len(hands))],
		})
		if err != nil {
			log.Fatalf("Failed to insert player: %s", err)
		}
		playerIDs = append(playerIDs, p.ID)
	}
	log.Info("Inserted players", "count", len(playerIDs))

	testTypes := club.TestTypes()
	testIDs := make([]string, 0, numTests)
	for i := range numTests {
		tt := testTypes[i%len(testTypes)]
		t, err := services.Tests.Create(ctx, service.CreateTest{
			Name:          fmt.Sprintf("%s assessment #%d", tt, i+1),
			TestType:      string(tt),
			DateConducted: time.Now().AddDate(0, 0, -30*i).Format(time.DateOnly),
		})
		if err != nil {
			log.Fatalf("Failed to insert test: %s", err)
		}
		testIDs = append(testIDs, t.ID)
	}
	log.Info("Inserted tests", "count", len(testIDs))

	score := func() *int {
		n := rng.Intn(13)
		return &n
	}
	results := 0
	for _, testID := range testIDs {
		for _, playerID := range playerIDs {
			// Roughly two thirds of the players attend each test.
			if rng.Intn(3) == 0 {
				continue
			}
			if _, err := services.Results.Create(ctx, service.CreateResult{
				PlayerID:  playerID,
				TestID:    testID,
				LeftHand:  score(),
				RightHand: score(),
				Forehand:  score(),
				Backhand:  score(),
			}); err != nil {
				log.Fatalf("Failed to insert result: %s", err)
			}
			results++
		}
	}

	log.Info("Successfully seeded the database.", "players", len(playerIDs), "tests", len(testIDs), "results", results, "duration", time.Since(startTime))
}
