package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/rating"
)

type wireRating struct {
	ID         string `json:"_id"`
	Puntaje    int    `json:"puntaje"`
	Comentario string `json:"comentario"`
	Editado    bool   `json:"editado"`
	Fecha      string `json:"fecha"`
	CreatedAt  string `json:"createdAt"`
}

type ratingKeyRequest struct {
	CalificadorID  string `json:"calificadorId"`
	EmpleadoID     string `json:"empleadoId"`
	ContratacionID string `json:"contratacionId"`
}

type ratingSubmitRequest struct {
	CalificadorID  string `json:"calificadorId"`
	EmpleadoID     string `json:"empleadoId"`
	Puntaje        int    `json:"puntaje"`
	Comentario     string `json:"comentario"`
	ContratacionID string `json:"contratacionId"`
}

func toDomainRating(w *wireRating, key rating.Key) *rating.Rating {
	raw := w.Fecha
	if raw == "" {
		raw = w.CreatedAt
	}
	createdAt, _ := time.Parse(time.RFC3339, raw)
	return &rating.Rating{
		ID:         w.ID,
		ContractID: key.ContractID,
		RaterID:    key.RaterID,
		RateeID:    key.RateeID,
		Score:      w.Puntaje,
		Comment:    w.Comentario,
		Edited:     w.Editado,
		CreatedAt:  createdAt,
	}
}

func keyRequest(key rating.Key) ratingKeyRequest {
	return ratingKeyRequest{
		CalificadorID:  key.RaterID,
		EmpleadoID:     key.RateeID,
		ContratacionID: key.ContractID,
	}
}

// FindRating looks up the single rating allowed for the key; nil when the
// rater has not rated this counterpart on this contract yet.
func (c *Client) FindRating(ctx context.Context, token string, key rating.Key) (*rating.Rating, error) {
	var res struct {
		Calificacion *wireRating `json:"calificacion"`
		YaCalificado bool        `json:"yaCalificado"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/calificacion/puede-calificar", token, keyRequest(key), &res)
	if err != nil {
		return nil, err
	}
	if res.Calificacion == nil {
		return nil, nil
	}
	return toDomainRating(res.Calificacion, key), nil
}

func (c *Client) CreateRating(ctx context.Context, token string, key rating.Key, score int, comment string) (*rating.Rating, error) {
	return c.submitRating(ctx, http.MethodPost, "/api/calificacion", token, key, score, comment)
}

func (c *Client) UpdateRating(ctx context.Context, token, ratingID string, key rating.Key, score int, comment string) (*rating.Rating, error) {
	return c.submitRating(ctx, http.MethodPut, "/api/calificacion/editar/"+ratingID, token, key, score, comment)
}

func (c *Client) submitRating(ctx context.Context, method, path, token string, key rating.Key, score int, comment string) (*rating.Rating, error) {
	body := ratingSubmitRequest{
		CalificadorID:  key.RaterID,
		EmpleadoID:     key.RateeID,
		Puntaje:        score,
		Comentario:     comment,
		ContratacionID: key.ContractID,
	}
	var res struct {
		Calificacion *wireRating `json:"calificacion"`
	}
	if err := c.doJSON(ctx, method, path, token, body, &res); err != nil {
		return nil, err
	}
	if res.Calificacion == nil {
		// The backend acknowledged without echoing the record.
		return &rating.Rating{
			ContractID: key.ContractID,
			RaterID:    key.RaterID,
			RateeID:    key.RateeID,
			Score:      score,
			Comment:    comment,
			CreatedAt:  time.Now().UTC(),
		}, nil
	}
	return toDomainRating(res.Calificacion, key), nil
}

func (c *Client) DeleteRating(ctx context.Context, token, ratingID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/calificacion/eliminar/"+ratingID, token, nil, nil)
}
