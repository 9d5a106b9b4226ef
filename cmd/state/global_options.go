package state

import "github.com/dreampie/jsminify/lib/consts"

// GlobalOptions contains global config values that apply for all jsminify sub-commands.
type GlobalOptions struct {
	ConfigFilePath string
	Quiet          bool
	NoColor        bool
	LogOutput      string
	LogFormat      string
	Verbose        bool
}

// GetDefaultGlobalOptions returns the default global flags.
func GetDefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		LogOutput: "stderr",
	}
}

func consolidateGlobalFlags(defaultFlags GlobalOptions, env map[string]string) GlobalOptions {
	result := defaultFlags

	if val, ok := env[consts.EnvPrefix+"CONFIG"]; ok {
		result.ConfigFilePath = val
	}
	if val, ok := env[consts.EnvPrefix+"LOG_OUTPUT"]; ok {
		result.LogOutput = val
	}
	if val, ok := env[consts.EnvPrefix+"LOG_FORMAT"]; ok {
		result.LogFormat = val
	}
	if env[consts.EnvPrefix+"NO_COLOR"] != "" {
		result.NoColor = true
	}
	// Support https://no-color.org/, even an empty value should disable the
	// color output.
	if _, ok := env["NO_COLOR"]; ok {
		result.NoColor = true
	}
	if env[consts.EnvPrefix+"QUIET"] != "" {
		result.Quiet = true
	}
	return result
}
