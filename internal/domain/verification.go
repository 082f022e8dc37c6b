package domain

// VerificationRequest is a pending, single-use, time-boxed signup record
// binding an email to a 6-digit code and a provisional credential.
// PK: email, SK: code. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
// CredentialHash is a bcrypt hash; the raw password is never stored.
type VerificationRequest struct {
	Email          string `json:"email" dynamodbav:"email"`
	Code           string `json:"-" dynamodbav:"code"`
	ExpiresAt      int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	Used           bool   `json:"used" dynamodbav:"used"`
	CredentialHash string `json:"-" dynamodbav:"credential_hash"`
}
