package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/guanggu/icollege/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cmd := newRootCommand(buildInfo())
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func buildInfo() models.AppBuildInfo {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}

	return models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
}
