package tokenrefresh

import (
	"context"
	"errors"
	"fmt"

	"meetly/httpServices/calendar"
	"meetly/httpServices/identity"
	"meetly/logger"
)

// ErrRefreshFailed is terminal: the refresh exchange (or persisting its
// result) failed and the host must reconnect their calendar account.
var ErrRefreshFailed = errors.New("failed to refresh calendar access")

// TokenSource loads, refreshes and persists a host's delegated OAuth
// credential. Implemented by the identity client; stubbed in tests.
type TokenSource interface {
	GetOAuthToken(ctx context.Context, subjectID string) (*identity.OAuthToken, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*identity.OAuthToken, error)
	UpdateRefreshToken(ctx context.Context, subjectID, refreshToken string) error
}

// Action is a calendar operation parameterized by a bearer credential.
type Action func(ctx context.Context, accessToken string) error

// Do runs action with the host's current access token. If the provider
// signals an expired credential, Do exchanges the refresh token for a new
// pair, persists the new refresh token, and reruns the action exactly once
// with the fresh access token. Any failure of the retried action, or of
// the refresh exchange itself, propagates; there is never a second
// refresh-and-retry cycle.
func Do(ctx context.Context, source TokenSource, subjectID string, action Action) error {
	cred, err := source.GetOAuthToken(ctx, subjectID)
	if err != nil {
		return err
	}

	err = action(ctx, cred.AccessToken)
	if err == nil || !calendar.IsAuthExpired(err) {
		return err
	}

	logger.Info(fmt.Sprintf("Access token expired for subject %s, refreshing", subjectID))

	refreshed, refreshErr := source.RefreshAccessToken(ctx, cred.RefreshToken)
	if refreshErr != nil {
		logger.Error("Failed to refresh token", refreshErr)
		return fmt.Errorf("%w: %v", ErrRefreshFailed, refreshErr)
	}

	// The provider may rotate the refresh token; fall back to the old one
	// when it does not. Access tokens are short-lived and stay in memory.
	newRefreshToken := refreshed.RefreshToken
	if newRefreshToken == "" {
		newRefreshToken = cred.RefreshToken
	}
	if updateErr := source.UpdateRefreshToken(ctx, subjectID, newRefreshToken); updateErr != nil {
		logger.Error("Failed to persist refreshed token", updateErr)
		return fmt.Errorf("%w: %v", ErrRefreshFailed, updateErr)
	}

	return action(ctx, refreshed.AccessToken)
}
