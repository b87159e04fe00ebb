package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

// wireProfile is the backend's nested profile document.
type wireProfile struct {
	Nombre         string   `json:"nombre"`
	Correo         string   `json:"correo"`
	Localidad      string   `json:"localidad"`
	Telefono       string   `json:"telefono"`
	Profesion      string   `json:"profesion"`
	Experiencia    int      `json:"experiencia"`
	Precio         float64  `json:"precio"`
	Calificacion   float64  `json:"calificacion"`
	Etiquetas      []string `json:"etiquetas"`
	Avatar         string   `json:"avatar"`
	CV             string   `json:"cv"`
	AceptaTerminos bool     `json:"aceptaTerminos"`
}

type wireUser struct {
	ID     string       `json:"_id"`
	UserID string       `json:"userId"`
	Rol    string       `json:"rol"`
	Correo string       `json:"correo"`
	Perfil *wireProfile `json:"perfil"`
}

func (c *Client) toDomainProfile(u *wireUser, fallbackID string) *profile.Profile {
	p := &profile.Profile{
		UserID:    u.UserID,
		ProfileID: u.ID,
		Role:      profile.Role(u.Rol),
		Email:     u.Correo,
		Tags:      []string{},
	}
	if p.UserID == "" {
		p.UserID = u.ID
	}
	if p.UserID == "" {
		p.UserID = fallbackID
	}
	if p.ProfileID == "" {
		p.ProfileID = fallbackID
	}
	if !p.Role.Valid() {
		p.Role = profile.RoleVisitor
	}
	if u.Perfil != nil {
		p.Name = u.Perfil.Nombre
		if u.Perfil.Correo != "" {
			p.Email = u.Perfil.Correo
		}
		p.Locality = u.Perfil.Localidad
		p.Phone = u.Perfil.Telefono
		p.Profession = u.Perfil.Profesion
		p.Experience = u.Perfil.Experiencia
		p.HourlyPrice = u.Perfil.Precio
		p.Rating = u.Perfil.Calificacion
		if u.Perfil.Etiquetas != nil {
			p.Tags = u.Perfil.Etiquetas
		}
		p.AvatarURL = c.assetURL(u.Perfil.Avatar)
		p.ResumeURL = c.assetURL(u.Perfil.CV)
		p.AcceptedTerms = u.Perfil.AceptaTerminos
	}
	return p
}

func (c *Client) FetchByID(ctx context.Context, token, profileID string) (*profile.Profile, error) {
	var res struct {
		Usuario *wireUser    `json:"usuario"`
		Perfil  *wireProfile `json:"perfil"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/perfil/obtener/"+profileID, token, nil, &res)
	if err != nil {
		return nil, err
	}
	if res.Usuario == nil {
		if res.Perfil == nil {
			return nil, apperror.NewNotFound("profile", profileID)
		}
		res.Usuario = &wireUser{Perfil: res.Perfil}
	} else if res.Usuario.Perfil == nil && res.Perfil != nil {
		res.Usuario.Perfil = res.Perfil
	}
	return c.toDomainProfile(res.Usuario, profileID), nil
}

func (c *Client) FetchAll(ctx context.Context, token string) ([]profile.Profile, error) {
	var res struct {
		Usuarios []wireUser `json:"usuarios"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/perfil/obtener/todos", token, nil, &res)
	if err != nil {
		return nil, err
	}
	out := make([]profile.Profile, 0, len(res.Usuarios))
	for i := range res.Usuarios {
		out = append(out, *c.toDomainProfile(&res.Usuarios[i], ""))
	}
	return out, nil
}

// Update forwards the edit as the multipart form the backend expects. File
// streams pass through untouched; the gateway keeps no copy.
func (c *Client) Update(ctx context.Context, token, profileID string, upd profile.Update) (*profile.Profile, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := map[string]string{
		"nombre":      upd.Name,
		"correo":      upd.Email,
		"localidad":   upd.Locality,
		"telefono":    upd.Phone,
		"profesion":   upd.Profession,
		"experiencia": strconv.Itoa(upd.Experience),
		"precio":      strconv.FormatFloat(upd.Price, 'f', -1, 64),
	}
	if upd.Role != "" {
		fields["rol"] = string(upd.Role)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, apperror.NewInternal("failed to write form field", err)
		}
	}

	tags := upd.Tags
	if tags == nil {
		tags = []string{}
	}
	rawTags, err := json.Marshal(tags)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode tags", err)
	}
	if err := w.WriteField("etiquetas", string(rawTags)); err != nil {
		return nil, apperror.NewInternal("failed to write tags field", err)
	}

	if err := writeFilePart(w, "avatar", upd.AvatarFilename, upd.Avatar); err != nil {
		return nil, err
	}
	if err := writeFilePart(w, "cv", upd.ResumeFilename, upd.Resume); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, apperror.NewInternal("failed to finish multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/perfil/editar/%s", c.baseURL, profileID), body)
	if err != nil {
		return nil, apperror.NewInternal("failed to build upstream request", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var res struct {
		Usuario *wireUser    `json:"usuario"`
		Perfil  *wireProfile `json:"perfil"`
	}
	if err := c.send(req, &res); err != nil {
		return nil, err
	}
	roleEchoed := res.Usuario != nil && res.Usuario.Rol != ""
	if res.Usuario == nil {
		res.Usuario = &wireUser{Perfil: res.Perfil, Rol: string(upd.Role)}
	}
	p := c.toDomainProfile(res.Usuario, profileID)
	if !roleEchoed && upd.Role == "" {
		// The edit did not touch the role and the backend did not echo
		// one. Unknown is not visitor; an empty role means "unchanged"
		// to callers holding a session.
		p.Role = ""
	}
	return p, nil
}

func writeFilePart(w *multipart.Writer, field, filename string, r io.Reader) error {
	if r == nil {
		return nil
	}
	if filename == "" {
		filename = field
	}
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return apperror.NewInternal("failed to create form file", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return apperror.NewInternal("failed to copy file stream", err)
	}
	return nil
}
