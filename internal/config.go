package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host           string        `env:"HOST,required=true"`
	Port           int           `env:"PORT,required=true"`
	LogLevel       string        `env:"LOG_LEVEL,required=true"`
	BadgerFilepath string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string        `env:"BLUGE_FILEPATH,required=true"`

	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthIssuer        string        `env:"AUTH_ISSUER,default=music-lab"`
	AuthAudience      string        `env:"AUTH_AUDIENCE,default=music-lab-clients"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`

	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL,default=1m"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`

	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
