package fpl

import "time"

const (
	defaultBaseURL     = "https://fantasy.premierleague.com/api"
	defaultUserAgent   = "myfpl-fetcher/1.0"
	defaultHTTPTimeout = 20 * time.Second
	bootstrapPath      = "/bootstrap-static/"
	fixturesPath       = "/fixtures/"
	elementSummaryPath = "/element-summary/%d/"
	maxErrorBody       = 512
)
