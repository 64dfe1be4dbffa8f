// Package main provides the administrative command line for the mcloud
// OAuth2 server core. It wires the configuration, store and services
// together and exposes one-shot maintenance commands; serving tokens over
// HTTP is the job of an outer transport layer, not this binary.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/config"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/dto"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/hasher"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/logger"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/metrics"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/service"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/storage"
	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/types"
)

// Version information (set by build process)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file (YAML)")
	logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	showVersion = flag.Bool("version", false, "Show version information")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <command> [args]

Commands:
  health                          check store connectivity
  add-user <username> <password>  create a user
  set-password <id> <password>    rotate a user's password
  del-user <id>                   delete a user
  list-users [fragment]           list users, optionally filtered by username fragment
  add-authority <name> [desc]     create an authority
  add-scope <name> [desc]         create a scope

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("mcloud-oauth2 %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	cfg := config.DefaultConfig()
	if *configFile != "" {
		if err := cfg.FromYAMLFile(*configFile); err != nil {
			return err
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cfg.LogLevel)
	m := metrics.NewNoOpMetrics()

	store, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	users := service.NewUserService(store, hasher.NewBcryptHasher(cfg.Security.BcryptCost), cfg, log, m)
	authorities := service.NewAuthorityService(store, cfg, log, m)
	scopes := service.NewScopeService(store, cfg, log, m)

	switch command {
	case "health":
		if err := store.HealthCheck(); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil

	case "add-user":
		if len(args) != 2 {
			return fmt.Errorf("usage: add-user <username> <password>")
		}
		resp, err := users.CreateOrUpdate(dto.UserRequest{Username: args[0], Password: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("created user %d (%s)\n", resp.ID, resp.Username)
		return nil

	case "set-password":
		if len(args) != 2 {
			return fmt.Errorf("usage: set-password <id> <password>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		resp, err := users.CreateOrUpdate(dto.UserRequest{ID: &id, Username: "-", Password: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("updated password for user %d (%s)\n", resp.ID, resp.Username)
		return nil

	case "del-user":
		if len(args) != 1 {
			return fmt.Errorf("usage: del-user <id>")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := users.Delete(id); err != nil {
			return err
		}
		fmt.Printf("deleted user %d\n", id)
		return nil

	case "list-users":
		fragment := ""
		if len(args) > 0 {
			fragment = args[0]
		}
		page, err := users.GetAll(dto.SearchUserRequest{Username: fragment}, types.PageRequest{})
		if err != nil {
			return err
		}
		for _, u := range page.Users {
			fmt.Printf("%d\t%s\t%s\n", u.ID, u.Username, u.Email)
		}
		fmt.Printf("total: %d\n", page.Total)
		return nil

	case "add-authority":
		if len(args) < 1 {
			return fmt.Errorf("usage: add-authority <name> [description]")
		}
		req := dto.AuthorityRequest{Name: args[0]}
		if len(args) > 1 {
			req.Description = args[1]
		}
		resp, err := authorities.Create(req)
		if err != nil {
			return err
		}
		fmt.Printf("created authority %d (%s)\n", resp.ID, resp.Name)
		return nil

	case "add-scope":
		if len(args) < 1 {
			return fmt.Errorf("usage: add-scope <name> [description]")
		}
		req := dto.ScopeRequest{Name: args[0]}
		if len(args) > 1 {
			req.Description = args[1]
		}
		resp, err := scopes.Create(req)
		if err != nil {
			return err
		}
		fmt.Printf("created scope %d (%s)\n", resp.ID, resp.Name)
		return nil

	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(v), nil
}
