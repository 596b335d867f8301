package config

import "os"

func IsDebug() bool {
	return os.Getenv("TRIP_DEBUG") == "1"
}
