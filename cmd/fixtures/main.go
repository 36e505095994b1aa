package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ankit-bind/shared-space-seekers/internal/repository"
	"github.com/ankit-bind/shared-space-seekers/internal/services"
)

const usage = `usage: fixtures [validate|dump] [--file path]

  validate  decode the fixture file and check listings and conversations
  dump      print the decoded fixtures as JSON

Without --file, FIXTURES_PATH is used. When that is empty too, the embedded
seed is used.`

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	var file string
	flagSet := pflag.NewFlagSet("fixtures", pflag.ContinueOnError)
	flagSet.StringVar(&file, "file", os.Getenv("FIXTURES_PATH"), "fixture YAML to read")
	flagSet.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("parse flags")
	}

	cmd := "validate"
	if flagSet.NArg() > 0 {
		cmd = flagSet.Arg(0)
	}

	path, err := resolveFixturesPath(file)
	if err != nil {
		log.Fatal().Err(err).Msg("locate fixtures")
	}

	fixtures, err := repository.LoadFixtures(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", describePath(path)).Msg("load fixtures")
	}

	switch cmd {
	case "validate":
		if err := validateFixtures(fixtures); err != nil {
			log.Fatal().Err(err).Str("path", describePath(path)).Msg("fixtures are invalid")
		}
		log.Info().
			Str("path", describePath(path)).
			Int("listings", len(fixtures.Listings)).
			Int("conversations", len(fixtures.Conversations)).
			Msg("fixtures are valid")
	case "dump":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(fixtures); err != nil {
			log.Fatal().Err(err).Msg("encode fixtures")
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

// validateFixtures runs the same constructors the server uses at startup.
func validateFixtures(fixtures *repository.Fixtures) error {
	if _, err := repository.NewListingRepository(fixtures.Listings); err != nil {
		return fmt.Errorf("listings: %w", err)
	}
	if _, err := services.NewConversationStore(fixtures.Conversations); err != nil {
		return fmt.Errorf("conversations: %w", err)
	}
	return nil
}

// resolveFixturesPath looks for a relative path in the working directory, its
// parents and next to the executable.
func resolveFixturesPath(file string) (string, error) {
	if file == "" || filepath.IsAbs(file) {
		return file, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	candidates := []string{}
	current := cwd
	for i := 0; i < 6; i++ {
		candidates = append(candidates, filepath.Join(current, file))
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	exePath, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(exeDir, file),
			filepath.Join(exeDir, "..", file),
		)
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("fixture file %q not found", file)
}

func describePath(path string) string {
	if path == "" {
		return "embedded seed"
	}
	return path
}
