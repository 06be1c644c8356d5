// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"errors"
)

var (
	// ErrNoActiveSession indicates an operation that needs a running game
	// session for the user.
	ErrNoActiveSession = errors.New("no active game session")
	// ErrInvalidAttempt indicates a submitted attempt that failed
	// validation before scoring.
	ErrInvalidAttempt = errors.New("invalid attempt")
)
