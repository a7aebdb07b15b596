package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/config"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/rating"
	"github.com/Dosada05/tournament-engine/services"
	"github.com/Dosada05/tournament-engine/utils"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:   "tournamentctl",
		Usage:  "generate schedules, bracket layouts and rating updates",
		Reader: stdin,
		Writer: stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "engine YAML settings file",
				EnvVars: []string{"ENGINE_CONFIG_FILE"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log engine operations to stderr",
			},
		},
		Commands: []*cli.Command{
			scheduleCommand(),
			layoutCommand(),
			rateCommand(),
			streakCommand(),
		},
	}
}

func engineConfig(c *cli.Context) (config.EngineConfig, error) {
	path := c.String("config")
	if path == "" {
		return config.DefaultEngineConfig(), nil
	}
	return config.LoadEngineConfig(path)
}

func logger(c *cli.Context) *slog.Logger {
	level := slog.LevelError
	if c.Bool("verbose") {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "\t")
	return enc.Encode(v)
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:      "schedule",
		Usage:     "generate a schedule for the given competitors",
		ArgsUsage: "<competitor>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: string(models.BracketRoundRobin),
				Usage: "RoundRobin, MultiStage or SingleElimination",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "shuffle seed; random when omitted",
			},
			&cli.StringFlag{
				Name:  "settings",
				Usage: "format settings as JSON",
			},
			&cli.StringFlag{
				Name:  "roster",
				Usage: "file with competitor IDs, one per line or comma separated (- for stdin)",
			},
		},
		Action: func(c *cli.Context) error {
			engine, err := engineConfig(c)
			if err != nil {
				return err
			}

			competitors := make([]models.CompetitorID, 0, c.Args().Len())
			for _, arg := range c.Args().Slice() {
				competitors = append(competitors, models.CompetitorID(arg))
			}
			if path := c.String("roster"); path != "" {
				fromFile, err := readRosterFile(c, path)
				if err != nil {
					return err
				}
				competitors = append(competitors, fromFile...)
			}

			input := services.GenerateScheduleInput{
				Format:      models.BracketType(c.String("format")),
				Competitors: competitors,
			}
			if s := c.String("settings"); s != "" {
				input.Settings = json.RawMessage(s)
			}
			if c.IsSet("seed") {
				seed := c.Uint64("seed")
				input.Seed = &seed
			}

			view, err := services.NewScheduleService(engine, logger(c), nil).GenerateSchedule(c.Context, input)
			if err != nil {
				return err
			}
			return printJSON(c, view)
		},
	}
}

func readRosterFile(c *cli.Context, path string) ([]models.CompetitorID, error) {
	if path == "-" {
		return utils.ReadRoster(c.App.Reader)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return utils.ReadRoster(f)
}

func layoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "layout",
		Usage: "compute node positions for a knockout read from stdin (schedule JSON or a bare match list)",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "width", Value: services.DefaultBottomRight.X},
			&cli.Float64Flag{Name: "height", Value: services.DefaultBottomRight.Y},
		},
		Action: func(c *cli.Context) error {
			data, err := io.ReadAll(c.App.Reader)
			if err != nil {
				return err
			}
			knockout, err := decodeKnockout(data)
			if err != nil {
				return err
			}

			layout, err := services.NewLayoutService(nil, logger(c), nil).ComputeLayout(c.Context, services.LayoutInput{
				Knockout:    knockout,
				BottomRight: &models.Point{X: c.Float64("width"), Y: c.Float64("height")},
			})
			if err != nil {
				return err
			}
			return printJSON(c, layout)
		},
	}
}

// decodeKnockout accepts the output of "schedule" (bare or wrapped in its view) or a JSON array of matches.
func decodeKnockout(data []byte) ([]models.KnockoutMatch, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var matches []models.KnockoutMatch
		if err := json.Unmarshal(data, &matches); err != nil {
			return nil, fmt.Errorf("failed to decode knockout matches: %w", err)
		}
		return matches, nil
	}

	var view struct {
		Schedule *brackets.Schedule    `json:"schedule"`
		Knockout []models.KnockoutMatch `json:"knockout"`
	}
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	if view.Schedule != nil {
		return view.Schedule.Knockout, nil
	}
	return view.Knockout, nil
}

func rateCommand() *cli.Command {
	return &cli.Command{
		Name:  "rate",
		Usage: "apply one match result to two Elo ratings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "p1", Required: true},
			&cli.StringFlag{Name: "p2", Required: true},
			&cli.Float64Flag{Name: "r1", Usage: "current rating of p1; baseline when omitted"},
			&cli.Float64Flag{Name: "r2", Usage: "current rating of p2; baseline when omitted"},
			&cli.StringFlag{Name: "winner", Required: true, Usage: "competitor ID of the winner"},
		},
		Action: func(c *cli.Context) error {
			engine, err := engineConfig(c)
			if err != nil {
				return err
			}

			p1, p2 := models.CompetitorID(c.String("p1")), models.CompetitorID(c.String("p2"))
			winner := models.CompetitorID(c.String("winner"))
			if winner != p1 && winner != p2 {
				return fmt.Errorf("winner %q is neither %q nor %q", winner, p1, p2)
			}

			now := time.Now().UTC()
			outcome := services.MatchOutcome{
				Player1:    p1,
				Player2:    &p2,
				Player1Won: winner == p1,
				PlayedAt:   now,
			}
			if c.IsSet("r1") {
				outcome.History1 = []models.RatingRecord{{Competitor: p1, Rating: c.Float64("r1"), Time: now}}
			}
			if c.IsSet("r2") {
				outcome.History2 = []models.RatingRecord{{Competitor: p2, Rating: c.Float64("r2"), Time: now}}
			}

			svc := services.NewRatingService(rating.NewEngine(engine.Rating), logger(c), nil)
			update, err := svc.ApplyResult(c.Context, outcome)
			if err != nil {
				return err
			}
			return printJSON(c, update)
		},
	}
}

func streakCommand() *cli.Command {
	return &cli.Command{
		Name:  "streak",
		Usage: "longest winning and losing streaks from a competitor,rating,time CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "history CSV (- or empty for stdin)"},
		},
		Action: func(c *cli.Context) error {
			in := c.App.Reader
			if path := c.String("file"); path != "" && path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			histories, err := utils.ReadRatingHistory(in)
			if err != nil {
				return err
			}
			if len(histories) == 0 {
				return errors.New("history is empty")
			}

			engine, err := engineConfig(c)
			if err != nil {
				return err
			}
			svc := services.NewRatingService(rating.NewEngine(engine.Rating), logger(c), nil)
			views, err := svc.Streaks(c.Context, histories)
			if err != nil {
				return err
			}
			return printJSON(c, views)
		},
	}
}
