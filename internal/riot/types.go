package riot

// LeagueEntry is one ranked-ladder entry from the league-v4 endpoints.
// Paginated entries carry puuid directly; apex league lists may only carry
// the legacy encrypted summonerId.
type LeagueEntry struct {
	PUUID        string `json:"puuid"`
	SummonerID   string `json:"summonerId"`
	Tier         string `json:"tier"` // empty in apex league lists (tier is on the wrapper)
	Rank         string `json:"rank"` // I, II, III, IV
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// LeagueList is the wrapper returned by the apex league endpoints
// (challengerleagues / grandmasterleagues / masterleagues).
type LeagueList struct {
	LeagueID string        `json:"leagueId"`
	Tier     string        `json:"tier"`
	Queue    string        `json:"queue"`
	Entries  []LeagueEntry `json:"entries"`
}

// Summoner is the summoner-v4 record used to resolve a PUUID from a
// legacy summonerId.
type Summoner struct {
	ID    string `json:"id"`
	PUUID string `json:"puuid"`
	Level int    `json:"summonerLevel"`
}

// Match is the match-v5 response for a single match.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"`
	GameDuration int           `json:"gameDuration"`
	GameVersion  string        `json:"gameVersion"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

// Participant is one player's block inside a match payload.
type Participant struct {
	PUUID        string `json:"puuid"`
	TeamID       int    `json:"teamId"` // 100 or 200
	TeamPosition string `json:"teamPosition"`
	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int `json:"neutralMinionsKilled"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	GoldEarned                  int `json:"goldEarned"`
	VisionScore                 int `json:"visionScore"`

	Win bool `json:"win"`
}

// regionalRoute maps a platform region (na1, euw1, kr, ...) to the regional
// routing host used by match-v5. Unknown platforms route to americas.
func regionalRoute(platform string) string {
	switch platform {
	case "na1", "br1", "la1", "la2", "oc1":
		return "americas"
	case "euw1", "eun1", "tr1", "ru", "me1":
		return "europe"
	case "kr", "jp1":
		return "asia"
	case "sg2", "tw2", "vn2":
		return "sea"
	default:
		return "americas"
	}
}
