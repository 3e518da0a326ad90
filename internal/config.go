package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	BufferSize        int           `env:"BUFFER_SIZE,default=256"`
	SessionBufferSize int           `env:"SESSION_BUFFER_SIZE,default=32"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	CensoredWords     []string      `env:"CENSORED_WORDS"`
	CharReplacement   string        `env:"CHARACTER_REPLACEMENT,default=*"`
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
