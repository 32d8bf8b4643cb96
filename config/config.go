package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of server performance.
var (
	MaxOpenConns       = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns       = getEnvInt("MAX_IDLE_CONNS", 20)
	MoveRate           = rate.Limit(getEnvInt("MOVE_RPS", 40))
	MoveBurstRate      = getEnvInt("MOVE_BURST", 10)
	SocketPollInterval = time.Duration(getEnvInt("SOCKET_POLL_MS", 50)) * time.Millisecond
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}
