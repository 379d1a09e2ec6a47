package domain

// Review is a rating left by a user for a game
type Review struct {
	ID      string  `json:"id" bson:"_id,omitempty"`
	UserID  string  `json:"userId" bson:"userId"`
	GameID  string  `json:"gameId" bson:"gameId"`
	Rating  float64 `json:"rating" bson:"rating"`
	Comment string  `json:"comment" bson:"comment"`
}
