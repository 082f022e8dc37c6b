package domain

// RoleUser is the default role assigned on signup completion. It must exist;
// its absence is a deployment misconfiguration, not a user-caused failure.
const RoleUser = "user"

type Role struct {
	RoleID string `json:"id" dynamodbav:"role_id"`
	Name   string `json:"name" dynamodbav:"name"`
}

// RoleAssignment links a user to a role. PK: user_id, SK: role_id.
type RoleAssignment struct {
	UserID string `json:"user_id" dynamodbav:"user_id"`
	RoleID string `json:"role_id" dynamodbav:"role_id"`
}
