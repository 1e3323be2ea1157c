package middleware

import (
	"strings"

	httpError "booking-service/src/pkg/http-error"
	"booking-service/src/pkg/token"
	"booking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

const userLocalKey = "auth"

// VerifyBearer validates the Authorization header and stashes the claim for
// downstream handlers. Tenant scope comes exclusively from the token.
func VerifyBearer(config *viper.Viper) fiber.Handler {
	secret := config.GetString("jwt.secret")
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		bearer, found := strings.CutPrefix(header, "Bearer ")
		if !found || bearer == "" {
			errObj := httpError.NewUnauthorized()
			errObj.Message = "missing bearer token"
			return utils.ResponseError(errObj, ctx)
		}

		claim, err := token.Verify(bearer, secret)
		if err != nil {
			errObj := httpError.NewUnauthorized()
			errObj.Message = err.Error()
			return utils.ResponseError(errObj, ctx)
		}

		ctx.Locals(userLocalKey, claim)
		return ctx.Next()
	}
}

// GetUser returns the claim stored by VerifyBearer.
func GetUser(ctx *fiber.Ctx) *token.Claim {
	claim, _ := ctx.Locals(userLocalKey).(*token.Claim)
	if claim == nil {
		return &token.Claim{}
	}
	return claim
}
