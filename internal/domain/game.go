package domain

// Game is a board game in the catalog
type Game struct {
	ID            string `json:"id" bson:"_id,omitempty"`
	Title         string `json:"title" bson:"title"`
	Publisher     string `json:"publisher" bson:"publisher"`
	YearPublished int    `json:"yearPublished" bson:"yearPublished"`
	MinPlayers    int    `json:"minPlayers" bson:"minPlayers"`
	MaxPlayers    int    `json:"maxPlayers" bson:"maxPlayers"`
	PlayTime      int    `json:"playTime" bson:"playTime"`
	Complexity    string `json:"complexity" bson:"complexity"`
	Genre         string `json:"genre" bson:"genre"`
	Description   string `json:"description" bson:"description"`
}
