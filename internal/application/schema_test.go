package application

import (
	"encoding/json"
	"testing"

	"boardgame-catalog-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoir44() map[string]any {
	return map[string]any{
		"title":         "Memoir '44",
		"publisher":     "Days of Wonder",
		"yearPublished": json.Number("2004"),
		"minPlayers":    json.Number("2"),
		"maxPlayers":    json.Number("8"),
		"playTime":      json.Number("60"),
		"complexity":    "Medium",
		"genre":         "Wargame",
		"description":   "WWII scenarios on a hex map",
	}
}

func validationFields(t *testing.T, err error) []domain.FieldError {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestValidateCreate_Game(t *testing.T) {
	fields, err := GameSchema.ValidateCreate(memoir44())
	require.NoError(t, err)

	assert.Equal(t, "Memoir '44", fields["title"])
	assert.Equal(t, int64(2004), fields["yearPublished"])
	assert.Equal(t, int64(8), fields["maxPlayers"])
	assert.Len(t, fields, 9)
}

func TestValidateCreate_DropsUnknownFields(t *testing.T) {
	input := memoir44()
	input["_id"] = "65a1b2c3d4e5f6a7b8c9d0e1"
	input["isAdmin"] = true

	fields, err := GameSchema.ValidateCreate(input)
	require.NoError(t, err)

	assert.NotContains(t, fields, "_id")
	assert.NotContains(t, fields, "isAdmin")
}

func TestValidateCreate_ReportsFailuresInDeclarationOrder(t *testing.T) {
	input := memoir44()
	delete(input, "title")
	input["yearPublished"] = json.Number("1850")
	input["minPlayers"] = "two"
	input["description"] = "   "

	fields := validationFields(t, mustFail(GameSchema.ValidateCreate(input)))

	require.Len(t, fields, 4)
	assert.Equal(t, domain.FieldError{Field: "title", Message: "title is required"}, fields[0])
	assert.Equal(t, "yearPublished", fields[1].Field)
	assert.Equal(t, "yearPublished must be an integer of at least 1900", fields[1].Message)
	assert.Equal(t, "minPlayers", fields[2].Field)
	assert.Equal(t, domain.FieldError{Field: "description", Message: "description must not be empty"}, fields[3])
}

func TestValidateCreate_IntegerCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int64
		ok    bool
	}{
		{"json number", json.Number("4"), 4, true},
		{"whole float", 4.0, 4, true},
		{"numeric string", "4", 4, true},
		{"fractional", json.Number("4.5"), 0, false},
		{"below minimum", json.Number("0"), 0, false},
		{"boolean", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := memoir44()
			input["minPlayers"] = tt.value

			fields, err := GameSchema.ValidateCreate(input)
			if !tt.ok {
				got := validationFields(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, "minPlayers must be an integer of at least 1", got[0].Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fields["minPlayers"])
		})
	}
}

func TestValidateCreate_UserDefaultsReviews(t *testing.T) {
	fields, err := UserSchema.ValidateCreate(map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, fields["reviews"])
}

func TestValidateCreate_UserRejectsBadEmailAndReviews(t *testing.T) {
	fields := validationFields(t, mustFail(UserSchema.ValidateCreate(map[string]any{
		"username": "alice",
		"email":    "not-an-email",
		"reviews":  "r1",
	})))

	require.Len(t, fields, 2)
	assert.Equal(t, "email must be a valid email address", fields[0].Message)
	assert.Equal(t, "reviews must be an array of strings", fields[1].Message)
}

func TestValidateCreate_ReviewRatingMessage(t *testing.T) {
	fields := validationFields(t, mustFail(ReviewSchema.ValidateCreate(map[string]any{
		"userId":  "u1",
		"gameId":  "g1",
		"rating":  "great",
		"comment": "Fun",
	})))

	require.Len(t, fields, 1)
	assert.Equal(t, domain.FieldError{Field: "rating", Message: "Rating must be a number"}, fields[0])
}

func TestValidateCreate_ReviewMissingComment(t *testing.T) {
	fields := validationFields(t, mustFail(ReviewSchema.ValidateCreate(map[string]any{
		"userId": "u1",
		"gameId": "g1",
		"rating": json.Number("4.5"),
	})))

	require.Len(t, fields, 1)
	assert.Equal(t, "comment", fields[0].Field)
}

func TestValidatePatch(t *testing.T) {
	t.Run("only supplied fields", func(t *testing.T) {
		fields, err := GameSchema.ValidatePatch(map[string]any{"playTime": json.Number("90")})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"playTime": int64(90)}, fields)
	})

	t.Run("no defaults applied", func(t *testing.T) {
		fields, err := UserSchema.ValidatePatch(map[string]any{"username": "bob"})
		require.NoError(t, err)
		assert.NotContains(t, fields, "reviews")
	})

	t.Run("empty patch", func(t *testing.T) {
		fields := validationFields(t, mustFail(GameSchema.ValidatePatch(map[string]any{"unknown": 1})))
		require.Len(t, fields, 1)
		assert.Equal(t, "body", fields[0].Field)
	})

	t.Run("invalid supplied field", func(t *testing.T) {
		fields := validationFields(t, mustFail(GameSchema.ValidatePatch(map[string]any{"title": 42})))
		require.Len(t, fields, 1)
		assert.Equal(t, "title must be a string", fields[0].Message)
	})
}

func TestSchemaFieldNames(t *testing.T) {
	assert.Equal(t, []string{"userId", "gameId", "rating", "comment"}, ReviewSchema.FieldNames())
}

func mustFail(_ map[string]any, err error) error {
	return err
}
