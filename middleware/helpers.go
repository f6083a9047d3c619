package middleware

import "context"

// GetClaimsFromContext returns the JWT claims stored by Authenticate.
func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaimsInContext
	}
	return claims, nil
}

// GetUserIDFromContext extracts the authenticated user id.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, err := GetClaimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	if claims.UserID <= 0 {
		return 0, ErrInvalidTokenClaim
	}
	return claims.UserID, nil
}
