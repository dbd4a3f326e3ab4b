package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type postsEndpoints struct {
	*BaseEndpoints
	store *Store
}

func (e *postsEndpoints) Register(router *mux.Router) {
	// List posts
	router.HandleFunc(
		"/post",
		e.TokenAuthFilter.Decorate(e.list),
	).Methods(http.MethodGet)

	// Create post
	router.HandleFunc(
		"/post",
		e.TokenAuthFilter.Decorate(e.create),
	).Methods(http.MethodPost)

	// Get post
	router.HandleFunc(
		"/post/{id}",
		e.TokenAuthFilter.Decorate(e.get),
	).Methods(http.MethodGet)

	// Update post
	router.HandleFunc(
		"/post/{id}",
		e.TokenAuthFilter.Decorate(e.update),
	).Methods(http.MethodPatch)

	// Delete post
	router.HandleFunc(
		"/post/{id}",
		e.TokenAuthFilter.Decorate(e.delete),
	).Methods(http.MethodDelete)

	// Like post
	router.HandleFunc(
		"/post/{id}/like",
		e.TokenAuthFilter.Decorate(e.like),
	).Methods(http.MethodPost)

	// Cancel like
	router.HandleFunc(
		"/post/{id}/like/cancel",
		e.TokenAuthFilter.Decorate(e.cancelLike),
	).Methods(http.MethodPost)

	// Count a view
	router.HandleFunc(
		"/post/{id}/hit",
		e.TokenAuthFilter.Decorate(e.hit),
	).Methods(http.MethodPost)
}

func (e *postsEndpoints) list(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				page, size, err := pageQuery(r)
				if err != nil {
					return nil, err
				}
				return e.store.ListPosts(page, size), nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *postsEndpoints) create(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				if err := parseMultipartForm(r); err != nil {
					return nil, err
				}
				authorID, err := strconv.ParseInt(r.FormValue("authorId"), 10, 64)
				if err != nil {
					return nil, &ErrBadRequest{
						Code:   "INVALID_BODY",
						Reason: `"authorId" must be an integer.`,
					}
				}
				return e.store.CreatePost(
					principalID(r.Context()),
					authorID,
					postFields{
						title:    r.FormValue("title"),
						article:  r.FormValue("article"),
						category: r.FormValue("category"),
					},
					formFile(r, "articleImage"),
				)
			},
			SuccessCode:    http.StatusCreated,
			SuccessMessage: "post created",
		},
	)
}

func (e *postsEndpoints) get(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				id, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				return e.store.GetPost(id)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *postsEndpoints) update(w http.ResponseWriter, r *http.Request) {
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
				return e.store.UpdatePost(
					principalID(r.Context()),
					id,
					postFields{
						title:    r.FormValue("title"),
						article:  r.FormValue("article"),
						category: r.FormValue("category"),
					},
					r.FormValue("oldFileName"),
					formFile(r, "articleImage"),
				)
			},
			SuccessCode:    http.StatusOK,
			SuccessMessage: "post updated",
		},
	)
}

func (e *postsEndpoints) delete(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				id, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				return nil, e.store.DeletePost(principalID(r.Context()), id)
			},
			SuccessCode: http.StatusNoContent,
		},
	)
}

type likeCount struct {
	Like int64 `json:"like"`
}

func (e *postsEndpoints) like(w http.ResponseWriter, r *http.Request) {
	e.setLike(w, r, true)
}

func (e *postsEndpoints) cancelLike(w http.ResponseWriter, r *http.Request) {
	e.setLike(w, r, false)
}

func (e *postsEndpoints) setLike(
	w http.ResponseWriter,
	r *http.Request,
	liked bool,
) {
	req := struct {
		UserID int64 `json:"userId"`
	}{}
	e.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: likeSchemaLoader,
			ReqBodyObj:          &req,
			EndpointLogic: func() (interface{}, error) {
				id, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				count, err := e.store.SetLike(
					principalID(r.Context()),
					id,
					req.UserID,
					liked,
				)
				if err != nil {
					return nil, err
				}
				return likeCount{Like: count}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

type hitCount struct {
	Hit int64 `json:"hit"`
}

func (e *postsEndpoints) hit(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				id, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				count, err := e.store.Hit(id)
				if err != nil {
					return nil, err
				}
				return hitCount{Hit: count}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}
