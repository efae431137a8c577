package steam

// FriendListResponse is the envelope returned by ISteamUser/GetFriendList.
type FriendListResponse struct {
	FriendsList struct {
		Friends []Friend `json:"friends"`
	} `json:"friendslist"`
}

// Friend is a single entry of a friend list.
type Friend struct {
	SteamID      string `json:"steamid"`
	Relationship string `json:"relationship"`
	FriendSince  int64  `json:"friend_since"`
}

// PlayerSummaryResponse is the envelope returned by ISteamUser/GetPlayerSummaries.
type PlayerSummaryResponse struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

// PlayerSummary is the public profile and presence of one account.
type PlayerSummary struct {
	SteamID      string `json:"steamid"`
	PersonaName  string `json:"personaname"`
	PersonaState int    `json:"personastate"`
	ProfileURL   string `json:"profileurl,omitempty"`
	GameID       string `json:"gameid,omitempty"`
}

// OwnedGamesResponse is the envelope returned by IPlayerService/GetOwnedGames.
type OwnedGamesResponse struct {
	Response struct {
		GameCount int         `json:"game_count"`
		Games     []OwnedGame `json:"games"`
	} `json:"response"`
}

// OwnedGame is one game in an account's library. PlaytimeForever is in minutes.
type OwnedGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int64  `json:"playtime_forever"`
	Playtime2Weeks  int64  `json:"playtime_2weeks,omitempty"`
}
