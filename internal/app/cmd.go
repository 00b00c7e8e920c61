package app

// Command is the application start mode.
type Command string

const (
	// CommandServe starts the API server.
	CommandServe Command = "serve"
	// CommandHealthcheck probes a running server's /health endpoint.
	// For the Docker healthcheck in distroless images.
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand splits the argument list into a subcommand and the
// remaining arguments. Bare flags or an unknown first argument imply
// serve, the default mode.
func ParseCommand(args []string) (Command, []string) {
	if len(args) == 0 {
		return CommandServe, nil
	}

	switch args[0] {
	case "serve":
		return CommandServe, args[1:]
	case "healthcheck":
		return CommandHealthcheck, args[1:]
	default:
		return CommandServe, args
	}
}
