package utils

import "github.com/google/uuid"

func GenerateUserID() string {
	return uuid.New().String()
}

// GeneratePromptID mints the store-assigned id for a prompt. Callers never
// pick their own ids.
func GeneratePromptID() string {
	return uuid.New().String()
}
