package espn_client

const (
	// Base URL
	BaseURL = "https://site.api.espn.com"

	// API Endpoints
	CollegeFootballScoreboardEndpoint = "/apis/site/v2/sports/football/college-football/scoreboard"

	// Groups
	FBSGroup = 80

	// Query defaults
	DefaultLimit = 300
	DateFormat   = "20060102"
)
