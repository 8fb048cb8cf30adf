package cli

// Options are shared by every command.
type Options struct {
	// Dir is the project directory searched for abacus.yaml.
	Dir string
	// ConfigPath points to an explicit config file. It must exist when set.
	ConfigPath string
	Debug      bool
}

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Options
	Headless bool
	JSON     bool
}

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Options
	// Port overrides http.port from the config when not empty.
	Port string
}

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Options
	// Transport and Port override the config when set.
	Transport string
	Port      int
}

// Execute handles the 'run' command logic.
func Execute(opts RunOptions) error {
	return RunSession(opts)
}
