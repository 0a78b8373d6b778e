package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. The OTP field pairs hold at most one pending code
// each; they are cleared on successful validation or expiry.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`

	IsAccountVerified bool `bson:"is_account_verified" json:"is_account_verified"`

	VerificationOtp         string     `bson:"verification_otp,omitempty" json:"-"`
	VerificationOtpExpireAt *time.Time `bson:"verification_otp_expire_at,omitempty" json:"-"`

	ResetPasswordOtp         string     `bson:"reset_password_otp,omitempty" json:"-"`
	ResetPasswordOtpExpireAt *time.Time `bson:"reset_password_otp_expire_at,omitempty" json:"-"`
	IsResetOtpValidated      bool       `bson:"is_reset_otp_validated" json:"-"`

	RefreshToken string `bson:"refresh_token,omitempty" json:"-"`

	ProfilePicture *Image `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Image is a stored media reference: the public URL plus the storage object key
// needed to delete it later. The thumbnail pair is empty when thumbnailing was
// skipped for the upload.
type Image struct {
	URL string `bson:"url" json:"url"`
	Key string `bson:"key" json:"key"`

	ThumbnailURL string `bson:"thumbnail_url,omitempty" json:"thumbnailUrl,omitempty"`
	ThumbnailKey string `bson:"thumbnail_key,omitempty" json:"-"`
}
