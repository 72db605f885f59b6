// Command leaguectl is a command-line client for the league services. It
// keeps the active session in a local file, so authenticated commands work
// across invocations until logout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/strikeball/platform/internal/client"
	"github.com/strikeball/platform/internal/session"
	"github.com/strikeball/platform/internal/wire"
)

type cliConfig struct {
	BaseURL     string `env:"STRIKEBALL_API" envDefault:"http://localhost:8080"`
	SessionFile string `env:"STRIKEBALL_SESSION_FILE"`
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("no command given")
	}

	_ = godotenv.Load()
	cfg := cliConfig{}
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	path := cfg.SessionFile
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return err
		}
	}

	c := client.New(client.EndpointsFromBase(cfg.BaseURL), session.NewStore(path), nil)
	ctx := context.Background()

	switch args[0] {
	case "register":
		return cmdRegister(ctx, c, args[1:])
	case "login":
		return cmdLogin(ctx, c, args[1:])
	case "logout":
		return c.Logout()
	case "whoami":
		return cmdWhoami(ctx, c)
	case "matches":
		return cmdMatches(ctx, c)
	case "join":
		return cmdJoin(ctx, c, args[1:])
	case "leave":
		return cmdLeave(ctx, c, args[1:])
	case "admin-data":
		return cmdAdminData(ctx, c)
	case "create-team":
		return cmdCreateTeam(ctx, c, args[1:])
	case "add-player":
		return cmdAddPlayer(ctx, c, args[1:])
	case "ban":
		return cmdBan(ctx, c, args[1:])
	case "create-match":
		return cmdCreateMatch(ctx, c, args[1:])
	case "complete-match":
		return cmdCompleteMatch(ctx, c, args[1:])
	case "avatar":
		return cmdAvatar(ctx, c, args[1:])
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: leaguectl <command> [flags]

commands:
  register        create an account and start a session
  login           authenticate and start a session
  logout          drop the local session
  whoami          show the current user
  matches         list matches
  join            register for a match
  leave           withdraw from a match
  admin-data      show player and team leaderboards (admin)
  create-team     create a team (admin)
  add-player      add a player to a team (admin)
  ban             ban or unban a player (admin)
  create-match    schedule a match (admin)
  complete-match  record a match result (admin)
  avatar          upload a profile image`)
}

func cmdRegister(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	nickname := fs.String("nickname", "", "optional call sign")
	team := fs.String("team", "", "optional team name")
	fs.Parse(args)

	resp, err := c.Register(ctx, wire.RegisterRequest{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Nickname: *nickname,
		Team:     *team,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered as %s (#%d)\n", resp.User.Email, resp.User.ID)
	return nil
}

func cmdLogin(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	resp, err := c.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (#%d)\n", resp.User.Email, resp.User.ID)
	return nil
}

func cmdWhoami(ctx context.Context, c *client.Client) error {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("not logged in")
		return nil
	}
	return printJSON(user)
}

func cmdMatches(ctx context.Context, c *client.Client) error {
	matches, err := c.Matches(ctx)
	if err != nil {
		return err
	}
	return printJSON(matches)
}

func cmdJoin(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	matchID := fs.Int64("match", 0, "match id")
	fs.Parse(args)

	if err := c.JoinMatch(ctx, *matchID); err != nil {
		return err
	}
	fmt.Println("registered for match", *matchID)
	return nil
}

func cmdLeave(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("leave", flag.ExitOnError)
	matchID := fs.Int64("match", 0, "match id")
	fs.Parse(args)

	if err := c.LeaveMatch(ctx, *matchID); err != nil {
		return err
	}
	fmt.Println("left match", *matchID)
	return nil
}

func cmdAdminData(ctx context.Context, c *client.Client) error {
	data, err := c.AdminData(ctx)
	if err != nil {
		return err
	}
	return printJSON(data)
}

func cmdCreateTeam(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("create-team", flag.ExitOnError)
	name := fs.String("name", "", "team name")
	description := fs.String("description", "", "optional description")
	fs.Parse(args)

	team, err := c.CreateTeam(ctx, *name, *description)
	if err != nil {
		return err
	}
	fmt.Printf("created team %s (#%d)\n", team.Name, team.ID)
	return nil
}

func cmdAddPlayer(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("add-player", flag.ExitOnError)
	teamID := fs.Int64("team", 0, "team id")
	playerID := fs.Int64("player", 0, "player id")
	role := fs.String("role", "", "member role")
	fs.Parse(args)

	if err := c.AddPlayerToTeam(ctx, *teamID, *playerID, *role); err != nil {
		return err
	}
	fmt.Printf("added player %d to team %d\n", *playerID, *teamID)
	return nil
}

func cmdBan(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("ban", flag.ExitOnError)
	playerID := fs.Int64("player", 0, "player id")
	unban := fs.Bool("unban", false, "lift the ban instead")
	fs.Parse(args)

	if err := c.BanPlayer(ctx, *playerID, !*unban); err != nil {
		return err
	}
	if *unban {
		fmt.Println("unbanned player", *playerID)
	} else {
		fmt.Println("banned player", *playerID)
	}
	return nil
}

func cmdCreateMatch(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("create-match", flag.ExitOnError)
	title := fs.String("title", "", "match title")
	matchType := fs.String("type", "", "match type")
	date := fs.String("date", "", "match date (RFC 3339 or YYYY-MM-DDTHH:MM)")
	maxPlayers := fs.Int("max-players", 0, "participant cap, 0 for unlimited")
	team1 := fs.Int64("team1", 0, "first team id")
	team2 := fs.Int64("team2", 0, "second team id")
	fs.Parse(args)

	req := wire.CreateMatchRequest{Title: *title, MatchType: *matchType, MatchDate: *date}
	if *maxPlayers > 0 {
		req.MaxPlayers = maxPlayers
	}
	if *team1 > 0 {
		req.Team1ID = team1
	}
	if *team2 > 0 {
		req.Team2ID = team2
	}

	match, err := c.CreateMatch(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("created match %s (#%d)\n", match.Title, match.ID)
	return nil
}

func cmdCompleteMatch(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("complete-match", flag.ExitOnError)
	matchID := fs.Int64("match", 0, "match id")
	winner := fs.Int64("winner", 0, "winning team id, 0 for a draw")
	score1 := fs.Int("score1", 0, "first team score")
	score2 := fs.Int("score2", 0, "second team score")
	duration := fs.Int("duration", 0, "duration in minutes")
	fs.Parse(args)

	req := wire.CompleteMatchRequest{MatchID: *matchID, ScoreTeam1: *score1, ScoreTeam2: *score2}
	if *winner > 0 {
		req.WinnerTeamID = winner
	}
	if *duration > 0 {
		req.DurationMinutes = duration
	}

	match, err := c.CompleteMatch(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("completed match %s (#%d)\n", match.Title, match.ID)
	return nil
}

func cmdAvatar(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("avatar", flag.ExitOnError)
	file := fs.String("file", "", "path to an image file")
	fs.Parse(args)

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	url, err := c.UploadAvatar(ctx, data, http.DetectContentType(data))
	if err != nil {
		return err
	}
	fmt.Println("avatar uploaded:", url)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
