package domain

// User is a catalog member. Reviews holds review ids and is not kept in sync with the review collection.
type User struct {
	ID       string   `json:"id" bson:"_id,omitempty"`
	Username string   `json:"username" bson:"username"`
	Email    string   `json:"email" bson:"email"`
	Reviews  []string `json:"reviews" bson:"reviews"`
}
