package main

import (
	"errors"
	"fmt"
	"os"

	"match-service/internal/config"
	"match-service/internal/match/service"
)

const (
	ExitSuccess = 0
	ExitError   = 1 // runtime error
	ExitUsage   = 2 // bad parameters or data
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, service.ErrConfig) || errors.Is(err, service.ErrMissingColumn) || errors.Is(err, config.ErrJob) {
			os.Exit(ExitUsage)
		}
		os.Exit(ExitError)
	}
}
