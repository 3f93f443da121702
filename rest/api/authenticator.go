package api

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/alpacahq/gopaca/db"
	"github.com/alpacahq/gopaca/env"
	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	jwtmiddleware "github.com/iris-contrib/middleware/jwt"
	"github.com/kataras/iris"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/utils"
)

type Authenticator interface {
	Authenticate(Context) error
	AuthenticateAdmin(Context) error
}

type authenticator struct {
	Authenticator
}

func NewAuthenticator() Authenticator {
	return &authenticator{}
}

var matcher = regexp.MustCompile("Bearer (.*)")

// Authenticate resolves the bearer token to the trader's account. In
// DEV mode the token is the raw owner ID, so local clients and tests
// can skip the identity provider entirely.
func (a *authenticator) Authenticate(ctx Context) (err error) {
	header := ctx.Request().Header.Get("Authorization")

	match := matcher.FindStringSubmatch(header)
	if len(match) < 2 {
		return gferrors.InvalidRequestParam.WithMsg("invalid authorization header value format")
	}

	tokenString := match[1]

	var ownerID uuid.UUID

	if utils.Dev() {
		ownerID = uuid.FromStringOrNil(tokenString)
	} else {
		var token *jwt.Token

		token, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(env.GetVar("TRADER_SECRET")), nil
		})
		if err != nil {
			return err
		}

		ownerID, err = handleTraderJWT(token)
		if err != nil {
			return err
		}
	}

	if ownerID == uuid.Nil {
		return gferrors.Unauthorized
	}

	// don't need to grab the context's connection, since a stale read
	// here only delays a brand new account by one request
	acct, err := ctx.Services().Account().WithTx(db.DB()).GetByOwnerID(ownerID)
	if err != nil {
		return gferrors.Unauthorized.WithMsg(fmt.Sprintf("owner verification failed : %v", err))
	}

	ctx.Authorize(acct.IDAsUUID(), PermissionTrading)

	// Assign account_id for tracking purpose
	ctx.Values().Set("account_id", acct.ID)

	return nil
}

func (a *authenticator) AuthenticateAdmin(ctx Context) error {
	adminID, err := uuid.FromString(ctx.Params().Get("admin_id"))
	if err != nil {
		return gferrors.Unauthorized.WithMsg("invalid admin_id")
	}

	if err = evaluateToken(ctx, adminID, env.GetVar("ADMIN_SECRET")); err != nil {
		return gferrors.Unauthorized.WithMsg(err.Error())
	}

	ctx.Authorize(adminID, PermissionAdmin)

	ctx.Values().Set("admin_id", adminID.String())

	return nil
}

func handleTraderJWT(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return uuid.Nil, gferrors.InternalServerError
	}

	ownerID := uuid.FromStringOrNil(claims["sub"].(string))
	if ownerID == uuid.Nil || !token.Valid {
		return uuid.Nil, gferrors.Unauthorized
	}

	return ownerID, nil
}

func evaluateToken(ctx iris.Context, id uuid.UUID, secret string) error {
	token, err := extractToken(ctx, secret)
	if err != nil {
		return err
	}

	claims := token.Claims.(jwt.MapClaims)
	sub := claims["sub"].(map[string]interface{})

	userID, err := uuid.FromString(sub["id"].(string))
	if err != nil {
		return err
	}

	if !token.Valid || claims["iss"] != "fundedfirm" || userID != id {
		return errors.New("token invalid")
	}

	return nil
}

func extractToken(ctx iris.Context, secret string) (*jwt.Token, error) {
	tokenString, err := jwtMiddleware.Config.Extractor(ctx)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	return token, nil
}

var jwtMiddleware = jwtmiddleware.New(jwtmiddleware.Config{
	ValidationKeyGetter: func(token *jwt.Token) (interface{}, error) {
		return []byte(env.GetVar("ADMIN_SECRET")), nil
	},
	SigningMethod: jwt.SigningMethodHS256,
	ErrorHandler: func(ctx iris.Context, err string) {
		ctx.StatusCode(iris.StatusUnauthorized)
	},
})
