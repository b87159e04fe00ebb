package upstream

import (
	"context"
	"net/http"

	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

// Credentials for the upstream login endpoint.
type Credentials struct {
	Email    string
	Password string
}

// LoginResult is what the backend hands back on a successful login.
type LoginResult struct {
	Token      string
	UserID     string
	ProfileID  string
	Role       string
	FirstLogin bool
}

type loginRequest struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contraseña"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Usuario *struct {
		ID       string `json:"_id"`
		UserID   string `json:"userId"`
		PerfilID string `json:"perfilId"`
		Rol      string `json:"rol"`
		Perfil   *struct {
			ID string `json:"_id"`
		} `json:"perfil"`
	} `json:"usuario"`
	PrimerLogin bool `json:"primerLogin"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "",
		loginRequest{Correo: email, Contrasena: password}, &res)
	if err != nil {
		return nil, err
	}

	if res.Usuario == nil {
		return nil, apperror.NewUnauthorized("login response carried no user", nil)
	}

	userID := res.Usuario.UserID
	if userID == "" {
		userID = res.Usuario.ID
	}
	profileID := res.Usuario.PerfilID
	if profileID == "" && res.Usuario.Perfil != nil {
		profileID = res.Usuario.Perfil.ID
	}
	if profileID == "" {
		profileID = userID
	}

	return &LoginResult{
		Token:      res.Token,
		UserID:     userID,
		ProfileID:  profileID,
		Role:       res.Usuario.Rol,
		FirstLogin: res.PrimerLogin,
	}, nil
}
