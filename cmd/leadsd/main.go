package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type cli struct {
	EnvFile  string      `name:"env-file" default:".env" help:"Optional dotenv file loaded before flags are resolved."`
	LogLevel string      `name:"log-level" env:"LEADS_LOG_LEVEL" default:"info" help:"debug, info, warn or error."`
	Dev      bool        `help:"Human readable console logs."`
	Serve    serveCmd    `cmd:"" help:"Serve the leads dashboard over HTTP."`
	Fixtures fixturesCmd `cmd:"" help:"Inspect fixture manifests."`
	Render   renderCmd   `cmd:"" help:"Render one page to stdout or a file."`
}

func main() {
	loadEnv(envFileFromArgs(os.Args[1:]))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app cli
	ctx := kong.Parse(&app,
		kong.Name("leadsd"),
		kong.Description("Sales and leads analytics dashboard."),
		kong.UsageOnError(),
		kong.BindTo(runCtx, (*context.Context)(nil)),
		kong.Bind(&app),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// loadEnv reads a dotenv file without overriding variables already set.
// A missing file is not an error.
func loadEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = os.Stderr.WriteString("leadsd: " + err.Error() + "\n")
	}
}

// envFileFromArgs peeks at --env-file before kong runs so env-backed flags
// see the file's values.
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--env-file" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--env-file="):
			return strings.TrimPrefix(arg, "--env-file=")
		}
	}
	return ".env"
}
