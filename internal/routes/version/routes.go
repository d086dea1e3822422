package version

import (
	"log/slog"
	"os/exec"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/reversi/internal/models"
)

const unknownCommit = "unknown"

// Commit can be set at build time:
//
//	go build -ldflags "-X github.com/lk16/flippy/reversi/internal/routes/version.Commit=$(git rev-parse HEAD)"
var Commit string

var (
	commitOnce sync.Once
	commit     string
)

type commitSource struct {
	name   string
	lookup func() (string, error)
}

// commitSources are tried in order until one returns a revision.
var commitSources = []commitSource{
	{"ldflags", func() (string, error) { return Commit, nil }},
	{"build info", buildInfoCommit},
	{"git", gitCommit},
}

func buildInfoCommit() (string, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", nil
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value, nil
		}
	}

	return "", nil
}

func gitCommit() (string, error) {
	output, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

func resolveCommit() string {
	for _, source := range commitSources {
		value, err := source.lookup()
		if err != nil {
			slog.Debug("Commit lookup failed", "source", source.name, "error", err)
			continue
		}

		if value = strings.TrimSpace(value); value != "" {
			slog.Debug("Resolved commit", "source", source.name, "commit", value)
			return value
		}
	}

	slog.Warn("Failed to determine commit, reporting it as unknown")
	return unknownCommit
}

func SetupRoutes(app *fiber.App) {
	commitOnce.Do(func() {
		commit = resolveCommit()
	})

	versionGroup := app.Group("/version")
	versionGroup.Get("/", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(models.VersionResponse{Commit: commit})
}
