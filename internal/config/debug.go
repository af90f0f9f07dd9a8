package config

import "os"

func IsDebug() bool {
	return os.Getenv("TERMSHELL_DEBUG") == "1"
}
