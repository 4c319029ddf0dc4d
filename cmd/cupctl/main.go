// cupctl is the operator CLI: seed demo data and force match recomputes.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/copperhead-cup/cup-bot/app/eventbus"
	matchdb "github.com/copperhead-cup/cup-bot/app/modules/match/infrastructure/repositories"
	tournamentservice "github.com/copperhead-cup/cup-bot/app/modules/tournament/application"
	tournamentdomain "github.com/copperhead-cup/cup-bot/app/modules/tournament/domain"
	tournamentdb "github.com/copperhead-cup/cup-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/copperhead-cup/cup-bot/app/shared/events/matchevents"
	"github.com/copperhead-cup/cup-bot/app/shared/observability"
	"github.com/copperhead-cup/cup-bot/app/shared/observability/metrics"
	"github.com/copperhead-cup/cup-bot/app/shared/sharedtypes"
	"github.com/copperhead-cup/cup-bot/app/shared/utils"
	"github.com/copperhead-cup/cup-bot/config"
)

func main() {
	cliApp := &cli.App{
		Name:  "cupctl",
		Usage: "operator commands for the cup scoring engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			seedCommand(),
			recomputeCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDB(c *cli.Context) (*config.Config, *bun.DB, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	return cfg, bun.NewDB(sqldb, pgdialect.New()), nil
}

func newTournamentService(db *bun.DB) tournamentservice.Service {
	return tournamentservice.NewTournamentService(
		tournamentdb.NewRepository(db),
		observability.NoOpLogger,
		metrics.NoOpTournamentMetrics{},
		noop.NewTracerProvider().Tracer("cupctl"),
		db,
	)
}

// seedCommand creates a demo tournament with a generated roster and one
// skins-enabled round.
func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create a demo tournament with a generated roster and one round",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "players",
				Value: 12,
				Usage: "roster size, split evenly across the two teams",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "faker seed for reproducible rosters (0 = random)",
			},
		},
		Action: func(c *cli.Context) error {
			_, db, err := openDB(c)
			if err != nil {
				return err
			}
			defer db.Close()

			faker := gofakeit.New(uint64(c.Int64("seed")))
			service := newTournamentService(db)

			roster := generateRoster(faker, c.Int("players"))
			t, err := service.CreateTournament(c.Context, &tournamentdomain.Tournament{
				Name:        fmt.Sprintf("%s Cup", faker.City()),
				PointsValue: 1,
				Roster:      roster,
				Captains: tournamentdomain.Captains{
					CaptainA: roster[0].PlayerID,
					CaptainB: roster[1].PlayerID,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to create tournament: %w", err)
			}

			round, err := service.CreateRound(c.Context, &tournamentdomain.Round{
				TournamentID: t.ID,
				Name:         "Round 1",
				Format:       sharedtypes.FormatSingles,
				Course:       generateCourse(faker),
				Skins: tournamentdomain.SkinsSettings{
					Enabled:   true,
					Pot:       100,
					Mode:      "net",
					Allowance: 0.8,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to create round: %w", err)
			}

			fmt.Printf("Created tournament %s (%s)\n", t.Name, t.ID)
			fmt.Printf("Created round %s (%s)\n", round.Name, round.ID)
			for _, entry := range roster {
				fmt.Printf("  %-24s %-5s tier %s  index %.1f\n", entry.PlayerID, entry.Team, entry.Tier, entry.HandicapIndex)
			}
			return nil
		},
	}
}

func generateRoster(faker *gofakeit.Faker, count int) []tournamentdomain.RosterEntry {
	if count < 2 {
		count = 2
	}
	tiers := []sharedtypes.Tier{"A", "B", "C"}
	roster := make([]tournamentdomain.RosterEntry, count)
	seen := map[string]bool{}

	for i := range roster {
		slug := playerSlug(faker)
		for seen[slug] {
			slug = playerSlug(faker)
		}
		seen[slug] = true

		team := sharedtypes.TeamA
		if i%2 == 1 {
			team = sharedtypes.TeamB
		}
		roster[i] = tournamentdomain.RosterEntry{
			PlayerID:      sharedtypes.PlayerID(slug),
			Team:          team,
			Tier:          tiers[i%len(tiers)],
			HandicapIndex: float64(faker.Number(0, 240)) / 10,
		}
	}
	return roster
}

func playerSlug(faker *gofakeit.Faker) string {
	return strings.ToLower(faker.FirstName() + "-" + faker.LastName())
}

func generateCourse(faker *gofakeit.Faker) tournamentdomain.Course {
	course := tournamentdomain.Course{
		Name:   fmt.Sprintf("%s National", faker.City()),
		Slope:  float64(faker.Number(110, 140)),
		Rating: float64(faker.Number(690, 740)) / 10,
	}

	// Par 72 card: four 3s, four 5s, ten 4s.
	pars := []int{3, 4, 4, 5, 4, 3, 4, 5, 4, 4, 3, 4, 5, 4, 4, 3, 5, 4}
	handicaps := seq(1, sharedtypes.HolesPerRound)
	faker.ShuffleInts(handicaps)
	for i := 0; i < sharedtypes.HolesPerRound; i++ {
		course.HolePars[i] = pars[i]
		course.HoleHandicaps[i] = handicaps[i]
		course.Par += pars[i]
	}
	return course
}

func seq(from, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = from + i
	}
	return out
}

// recomputeCommand republishes recompute requests for every match in a round.
func recomputeCommand() *cli.Command {
	return &cli.Command{
		Name:  "recompute",
		Usage: "request a recompute for every match in a round",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "round",
				Required: true,
				Usage:    "round UUID",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "list matches without publishing anything",
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "skip the confirmation prompt",
			},
		},
		Action: func(c *cli.Context) error {
			roundUUID, err := uuid.Parse(c.String("round"))
			if err != nil {
				return fmt.Errorf("invalid round id: %w", err)
			}
			roundID := sharedtypes.RoundID(roundUUID)

			cfg, db, err := openDB(c)
			if err != nil {
				return err
			}
			defer db.Close()

			matches, err := matchdb.NewRepository(db).GetMatchesForRound(c.Context, nil, roundID)
			if err != nil {
				return fmt.Errorf("failed to load matches: %w", err)
			}
			if len(matches) == 0 {
				fmt.Println("No matches in round.")
				return nil
			}

			for _, m := range matches {
				fmt.Printf("  %s  %s  %s\n", m.ID, m.Format, m.Result.Scoreline)
			}
			if c.Bool("dry-run") {
				fmt.Printf("Dry run: %d recompute requests not published.\n", len(matches))
				return nil
			}
			if !c.Bool("yes") {
				fmt.Printf("Republish %d recompute requests? [y/N] ", len(matches))
				var answer string
				fmt.Scanln(&answer)
				if !strings.EqualFold(answer, "y") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			bus, err := eventbus.New(c.Context, cfg.NATS.URL, "cupctl", observability.NoOpLogger)
			if err != nil {
				return fmt.Errorf("failed to connect to event bus: %w", err)
			}
			defer bus.Close()

			helpers := utils.NewHelpers(observability.NoOpLogger)
			for _, m := range matches {
				// Forced: the whole point of the tool is regenerating
				// derived state, so the hash short-circuit must not skip
				// unchanged matches.
				msg, err := helpers.CreateNewMessage(
					matchevents.MatchRecomputeRequestedPayloadV1{MatchID: m.ID, Force: true},
					matchevents.MatchRecomputeRequestedV1,
				)
				if err != nil {
					return err
				}
				if err := bus.Publish(matchevents.MatchRecomputeRequestedV1, msg); err != nil {
					return fmt.Errorf("failed to publish for match %s: %w", m.ID, err)
				}
			}
			fmt.Printf("Published %d recompute requests.\n", len(matches))
			return nil
		},
	}
}
