package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stogie_backend/internals/features/users/auth/dto"
	authRepo "stogie_backend/internals/features/users/auth/repository"
	userModel "stogie_backend/internals/features/users/user/model"
	helper "stogie_backend/internals/helpers"
	helperAuth "stogie_backend/internals/helpers/auth"
)

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, opt Options, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.UserName
	}
	user := userModel.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: hash,
		IsActive: true,
	}
	if err := authRepo.CreateUserWithProfile(c.UserContext(), db, &user, displayName); err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email or user name already registered")
		}
		return helper.MapDBError(err, "user")
	}

	log.Printf("[INFO] registered user %s (@%s)", user.ID, user.UserName)
	return issueTokens(c, db, opt, user, fiber.StatusCreated, "Registration successful")
}

/* ==========================
   LOGIN (user_name/email + password)
========================== */

func Login(db *gorm.DB, opt Options, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Identifier = strings.TrimSpace(req.Identifier)
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	user, err := authRepo.FindUserByEmailOrUsername(c.UserContext(), db, req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong identifier or password")
		}
		return helper.MapDBError(err, "user")
	}
	if err := CheckPasswordHash(user.Password, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong identifier or password")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	return issueTokens(c, db, opt, *user, fiber.StatusOK, "Login successful")
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, opt Options, c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}
	if opt.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Google login is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{opt.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Failed to decode ID Token")
	}
	return loginWithGoogleIdentity(db, opt, c, claimSet.Sub, strings.ToLower(claimSet.Email), claimSet.Name)
}

// loginWithGoogleIdentity finds the account by Google sub, then by email (linking it),
// and creates one when neither exists.
func loginWithGoogleIdentity(db *gorm.DB, opt Options, c *fiber.Ctx, googleID, email, name string) error {
	ctx := c.UserContext()

	user, err := authRepo.FindUserByGoogleID(ctx, db, googleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = authRepo.FindUserByEmail(ctx, db, email)
		if err == nil {
			if lerr := authRepo.LinkGoogleID(ctx, db, user.ID, googleID); lerr != nil {
				return helper.MapDBError(lerr, "user")
			}
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		handle, herr := uniqueHandle(c, db, name, email)
		if herr != nil {
			return helper.MapDBError(herr, "user")
		}
		pw, perr := HashPassword(uuid.NewString())
		if perr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
		}
		user = &userModel.UserModel{
			UserName: handle,
			Email:    email,
			Password: pw,
			GoogleID: &googleID,
			IsActive: true,
		}
		err = authRepo.CreateUserWithProfile(ctx, db, user, strings.TrimSpace(name))
	}
	if err != nil {
		return helper.MapDBError(err, "user")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}
	return issueTokens(c, db, opt, *user, fiber.StatusOK, "Login successful")
}

// uniqueHandle derives a free @handle from the Google display name or the email local part.
func uniqueHandle(c *fiber.Ctx, db *gorm.DB, name, email string) (string, error) {
	base := name
	if strings.TrimSpace(base) == "" {
		base = strings.SplitN(email, "@", 2)[0]
	}
	base = strings.ReplaceAll(helper.Slugify(base, 24), "-", "_")
	if len(base) < 3 {
		base += "_smoker"
	}
	candidate := base
	for i := 2; i < 100; i++ {
		taken, err := authRepo.IsUsernameTaken(c.UserContext(), db, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
	return base + "_" + strings.ReplaceAll(uuid.NewString()[:8], "-", ""), nil
}

/* ==========================
   ME
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(c.UserContext(), db, userID)
	if err != nil {
		return helper.MapDBError(err, "user")
	}
	var profile userModel.UserProfileModel
	pp := &profile
	if err := db.WithContext(c.UserContext()).Where("user_profile_user_id = ?", userID).Take(&profile).Error; err != nil {
		pp = nil
	}
	return helper.JsonOK(c, "ok", fiber.Map{"user": dto.ToUserResponse(*user, pp)})
}

/* ==========================
   CHANGE PASSWORD
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	user, err := authRepo.FindUserByID(c.UserContext(), db, userID)
	if err != nil {
		return helper.MapDBError(err, "user")
	}
	if err := CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}
	newHash, err := HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	if err := authRepo.UpdateUserPassword(c.UserContext(), db, userID, newHash); err != nil {
		return helper.MapDBError(err, "user")
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, opt Options, c *fiber.Ctx) error {
	ctx := c.UserContext()

	if access := helper.GetRawAccessToken(c); access != "" {
		until := nowUTC().Add(resolveBlacklistTTL(access, opt.JWTSecret))
		if err := helperAuth.Add(ctx, db, access, opt.JWTSecret, until); err != nil {
			log.Printf("[WARN] failed to blacklist token: %v", err)
		}
	}
	if rt := helper.GetRefreshTokenFromCookie(c); rt != "" {
		if err := authRepo.DeleteRefreshTokenByHash(ctx, db, helperAuth.HashToken(rt, opt.RefreshSecret)); err != nil {
			log.Printf("[WARN] failed to drop refresh token: %v", err)
		}
	}
	clearAuthCookies(c, opt)
	return helper.JsonOK(c, "Logout successful", nil)
}

// resolveBlacklistTTL keeps the entry slightly longer than the token's remaining life.
func resolveBlacklistTTL(accessToken, secret string) time.Duration {
	ttl := 2 * time.Minute
	if secret == "" || accessToken == "" {
		return ttl
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(accessToken, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return ttl
	}
	if exp, ok := claims["exp"].(float64); ok {
		if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
			return until + time.Minute
		}
		return time.Minute
	}
	return ttl
}
