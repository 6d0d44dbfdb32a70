package logger

import (
	"os"

	"go.uber.org/zap"
)

// L is the process-wide logger. Defaults to production config; DEBUG=1
// switches to development output.
var L *zap.Logger

func init() {
	var err error
	if os.Getenv("DEBUG") != "" {
		L, err = zap.NewDevelopment()
	} else {
		L, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
}

// Err is shorthand for zap.Error.
func Err(err error) zap.Field {
	return zap.Error(err)
}
