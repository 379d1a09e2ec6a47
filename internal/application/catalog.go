package application

// GameSchema declares the stored fields of a game
var GameSchema = Schema{
	Kind:       "game",
	Label:      "Game",
	Collection: "games",
	Fields: []FieldRule{
		Text("title"),
		Text("publisher"),
		Integer("yearPublished", 1900),
		Integer("minPlayers", 1),
		Integer("maxPlayers", 1),
		Integer("playTime", 1),
		Text("complexity"),
		Text("genre"),
		Text("description"),
	},
}

// UserSchema declares the stored fields of a user
var UserSchema = Schema{
	Kind:       "user",
	Label:      "User",
	Collection: "users",
	Fields: []FieldRule{
		Text("username"),
		Email("email"),
		StringList("reviews").WithDefault(func() any { return []string{} }),
	},
}

// ReviewSchema declares the stored fields of a review
var ReviewSchema = Schema{
	Kind:       "review",
	Label:      "Review",
	Collection: "reviews",
	Fields: []FieldRule{
		Text("userId"),
		Text("gameId"),
		Number("rating").WithMessage("Rating must be a number"),
		Text("comment"),
	},
}
