package mockapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type usersEndpoints struct {
	*BaseEndpoints
	store *Store
}

func (e *usersEndpoints) Register(router *mux.Router) {
	// Sign up
	router.HandleFunc(
		"/user",
		e.create, // No filters applied to this request
	).Methods(http.MethodPost)

	// Check email availability
	router.HandleFunc(
		"/user/email/double-check",
		e.checkEmail, // No filters applied to this request
	).Methods(http.MethodPost)

	// Check nickname availability
	router.HandleFunc(
		"/user/nickname/double-check",
		e.checkNickname, // No filters applied to this request
	).Methods(http.MethodPost)

	// Get user
	router.HandleFunc(
		"/user/{id}",
		e.TokenAuthFilter.Decorate(e.get),
	).Methods(http.MethodGet)

	// Update profile
	router.HandleFunc(
		"/user/{id}",
		e.TokenAuthFilter.Decorate(e.update),
	).Methods(http.MethodPatch)

	// Delete user
	router.HandleFunc(
		"/user/{id}",
		e.TokenAuthFilter.Decorate(e.delete),
	).Methods(http.MethodDelete)

	// Update password
	router.HandleFunc(
		"/user/{id}/password",
		e.TokenAuthFilter.Decorate(e.updatePassword),
	).Methods(http.MethodPatch)
}

func (e *usersEndpoints) create(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				if err := parseMultipartForm(r); err != nil {
					return nil, err
				}
				return e.store.CreateUser(
					r.FormValue("email"),
					r.FormValue("password"),
					r.FormValue("nickname"),
					formFile(r, "profileImage"),
				)
			},
			SuccessCode:    http.StatusCreated,
			SuccessMessage: "signup success",
		},
	)
}

type availability struct {
	Available bool `json:"available"`
}

func (e *usersEndpoints) checkEmail(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Email string `json:"email"`
	}{}
	e.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: emailCheckSchemaLoader,
			ReqBodyObj:          &req,
			EndpointLogic: func() (interface{}, error) {
				return availability{
					Available: e.store.EmailAvailable(req.Email),
				}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *usersEndpoints) checkNickname(
	w http.ResponseWriter,
	r *http.Request,
) {
	req := struct {
		Nickname string `json:"nickname"`
	}{}
	e.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: nicknameCheckSchemaLoader,
			ReqBodyObj:          &req,
			EndpointLogic: func() (interface{}, error) {
				return availability{
					Available: e.store.NicknameAvailable(req.Nickname),
				}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *usersEndpoints) get(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				id, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				return e.store.GetUser(id)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *usersEndpoints) update(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				id, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				if err = parseMultipartForm(r); err != nil {
					return nil, err
				}
				return e.store.UpdateUser(
					principalID(r.Context()),
					id,
					r.FormValue("nickname"),
					r.FormValue("oldFileName"),
					formFile(r, "profileImage"),
				)
			},
			SuccessCode:    http.StatusOK,
			SuccessMessage: "profile updated",
		},
	)
}

func (e *usersEndpoints) delete(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				id, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				return nil, e.store.DeleteUser(principalID(r.Context()), id)
			},
			SuccessCode: http.StatusNoContent,
		},
	)
}

func (e *usersEndpoints) updatePassword(
	w http.ResponseWriter,
	r *http.Request,
) {
	req := struct {
		Password string `json:"password"`
	}{}
	e.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: passwordSchemaLoader,
			ReqBodyObj:          &req,
			EndpointLogic: func() (interface{}, error) {
				id, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				return nil, e.store.UpdatePassword(
					principalID(r.Context()),
					id,
					req.Password,
				)
			},
			SuccessCode: http.StatusNoContent,
		},
	)
}
