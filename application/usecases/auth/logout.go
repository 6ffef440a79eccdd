package auth_usecases

import (
	"fmt"

	security_usecases "zsecure.app/application/usecases/security"
	"zsecure.app/entities"
	"zsecure.app/infrastructure/auth"
)

func LogoutUseCase(ctx any, userID string, ipAddress *string, userAgent *string) {
	auth.SignOutUser(ctx, fmt.Sprintf("%s-session", userID), "user initiated logout")
	security_usecases.RecordSecurityEvent(&userID, "logout", "user signed out", entities.SeverityInfo, ipAddress, userAgent)
}
