package entities

import (
	"time"

	"zsecure.app/application/utils"
)

type Device struct {
	LastLogin time.Time `bson:"lastLogin" json:"lastLogin"`
	Name      string    `bson:"name" json:"name"`
	ID        string    `bson:"id" json:"id"`
}

// This represents an account enrolled with z-secure. The face encoding is
// stored encrypted under the server key, never in the clear, and the
// account salt is stable for the life of the enrollment so previously
// encrypted artifacts stay decryptable under the same biometric.
type User struct {
	Email          string     `bson:"email" json:"email"`
	Password       string     `bson:"password" json:"-"`
	AccountSalt    []byte     `bson:"accountSalt" json:"-"`
	FaceBlob       []byte     `bson:"faceBlob" json:"-"`
	FaceEnrolledAt *time.Time `bson:"faceEnrolledAt" json:"faceEnrolledAt"`
	FailedAttempts int        `bson:"failedAttempts" json:"-"`
	LockedUntil    *time.Time `bson:"lockedUntil" json:"-"`
	LastLogin      *time.Time `bson:"lastLogin" json:"lastLogin"`
	Deactivated    bool       `bson:"deactivated" json:"deactivated"`
	Devices        []Device   `bson:"devices" json:"devices"`

	ID        string     `bson:"_id" json:"id"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt" json:"deletedAt"`
}

func (model User) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
