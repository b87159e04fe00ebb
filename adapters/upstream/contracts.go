package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
)

type wireParty struct {
	ID           string  `json:"_id"`
	Nombre       string  `json:"nombre"`
	Rol          string  `json:"rol"`
	Avatar       string  `json:"avatar"`
	Telefono     string  `json:"telefono"`
	Profesion    string  `json:"profesion"`
	Calificacion float64 `json:"calificacion"`
}

type wireContract struct {
	ID        string    `json:"_id"`
	Estado    string    `json:"estado"`
	Fecha     string    `json:"fecha"`
	Empleador wireParty `json:"empleador"`
	Empleado  wireParty `json:"empleado"`
}

func (c *Client) toDomainContract(w *wireContract) contract.Contract {
	createdAt, _ := time.Parse(time.RFC3339, w.Fecha)
	return contract.Contract{
		ID:        w.ID,
		State:     contract.State(w.Estado),
		CreatedAt: createdAt,
		Hirer:     c.toDomainParty(w.Empleador),
		Worker:    c.toDomainParty(w.Empleado),
	}
}

func (c *Client) toDomainParty(w wireParty) contract.Party {
	return contract.Party{
		UserID:     w.ID,
		Name:       w.Nombre,
		Role:       w.Rol,
		Avatar:     c.assetURL(w.Avatar),
		Phone:      w.Telefono,
		Profession: w.Profesion,
		Rating:     w.Calificacion,
	}
}

func toWireParty(p contract.Party) wireParty {
	return wireParty{
		ID:           p.UserID,
		Nombre:       p.Name,
		Rol:          p.Role,
		Avatar:       p.Avatar,
		Telefono:     p.Phone,
		Profesion:    p.Profession,
		Calificacion: p.Rating,
	}
}

// FetchAll returns the full notification list. The endpoint is unscoped by
// the backend; callers must filter with contract.FilterForUser before showing
// anything to a user.
func (c *Client) FetchAllContracts(ctx context.Context, token string) ([]contract.Contract, error) {
	var res struct {
		Data []wireContract `json:"data"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/api/contratacion/notificaciones", token, nil, &res)
	if err != nil {
		return nil, err
	}
	out := make([]contract.Contract, 0, len(res.Data))
	for i := range res.Data {
		out = append(out, c.toDomainContract(&res.Data[i]))
	}
	return out, nil
}

func (c *Client) CreateContract(ctx context.Context, token, workerProfileID string, hirer, worker contract.Party) (*contract.Contract, error) {
	body := struct {
		EmpleadorID    string    `json:"empleadorId"`
		EmpleadoID     string    `json:"empleadoId"`
		EmpleadorDatos wireParty `json:"empleadorDatos"`
		EmpleadoDatos  wireParty `json:"empleadoDatos"`
	}{
		EmpleadorID:    hirer.UserID,
		EmpleadoID:     worker.UserID,
		EmpleadorDatos: toWireParty(hirer),
		EmpleadoDatos:  toWireParty(worker),
	}

	var res struct {
		Data   *wireContract `json:"data"`
		Estado string        `json:"estado"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/contratacion/"+workerProfileID, token, body, &res)
	if err != nil {
		return nil, err
	}
	if res.Data != nil {
		created := c.toDomainContract(res.Data)
		return &created, nil
	}
	// Older backend deployments answer with just the new state.
	state := contract.State(res.Estado)
	if !state.Valid() {
		state = contract.StatePending
	}
	return &contract.Contract{State: state, Hirer: hirer, Worker: worker, CreatedAt: time.Now().UTC()}, nil
}

func (c *Client) UpdateContractState(ctx context.Context, token, contractID string, state contract.State) (*contract.Contract, error) {
	body := struct {
		Estado string `json:"estado"`
	}{Estado: string(state)}

	var res struct {
		Data *wireContract `json:"data"`
	}
	err := c.doJSON(ctx, http.MethodPut, "/api/contratacion/notificaciones/estado/"+contractID, token, body, &res)
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return &contract.Contract{ID: contractID, State: state}, nil
	}
	updated := c.toDomainContract(res.Data)
	return &updated, nil
}

func (c *Client) DeleteContract(ctx context.Context, token, contractID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/contratacion/notificaciones/"+contractID, token, nil, nil)
}
