package models

import "time"

// User is the persisted account record. PasswordHash and RefreshToken never
// leave the server: both are excluded from JSON serialization.
type User struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	Username           string    `bson:"username" json:"username"`
	Email              string    `bson:"email" json:"email"`
	PasswordHash       string    `bson:"passwordHash" json:"-"`
	LeetcodeUsername   string    `bson:"leetcodeUsername" json:"leetcodeUsername"`
	CodeforcesUsername string    `bson:"codeforcesUsername" json:"codeforcesUsername"`
	CodechefUsername   string    `bson:"codechefUsername" json:"codechefUsername"`
	RefreshToken       string    `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}
