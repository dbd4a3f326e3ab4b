package mockapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type commentsEndpoints struct {
	*BaseEndpoints
	store *Store
}

func (e *commentsEndpoints) Register(router *mux.Router) {
	// Create comment
	router.HandleFunc(
		"/post/{id}/comment",
		e.TokenAuthFilter.Decorate(e.create),
	).Methods(http.MethodPost)

	// List comments
	router.HandleFunc(
		"/post/{id}/comment",
		e.TokenAuthFilter.Decorate(e.list),
	).Methods(http.MethodGet)

	// Update comment
	router.HandleFunc(
		"/post/{id}/comment/{commentID}",
		e.TokenAuthFilter.Decorate(e.update),
	).Methods(http.MethodPatch)

	// Delete comment
	router.HandleFunc(
		"/post/{id}/comment/{commentID}",
		e.TokenAuthFilter.Decorate(e.delete),
	).Methods(http.MethodDelete)
}

func (e *commentsEndpoints) create(w http.ResponseWriter, r *http.Request) {
	req := struct {
		UserID  int64  `json:"userId"`
		Content string `json:"content"`
	}{}
	e.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: newCommentSchemaLoader,
			ReqBodyObj:          &req,
			EndpointLogic: func() (interface{}, error) {
				postID, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				return e.store.CreateComment(
					principalID(r.Context()),
					postID,
					req.UserID,
					req.Content,
				)
			},
			SuccessCode:    http.StatusCreated,
			SuccessMessage: "comment created",
		},
	)
}

func (e *commentsEndpoints) list(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				postID, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				page, size, err := pageQuery(r)
				if err != nil {
					return nil, err
				}
				return e.store.ListComments(postID, page, size)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *commentsEndpoints) update(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Content string `json:"content"`
	}{}
	e.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: commentUpdateSchemaLoader,
			ReqBodyObj:          &req,
			EndpointLogic: func() (interface{}, error) {
				postID, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				id, err := idVar(r, "commentID")
				if err != nil {
					return nil, err
				}
				return e.store.UpdateComment(
					principalID(r.Context()),
					postID,
					id,
					req.Content,
				)
			},
			SuccessCode:    http.StatusOK,
			SuccessMessage: "comment updated",
		},
	)
}

func (e *commentsEndpoints) delete(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				postID, err := idVar(r, "id")
				if err != nil {
					return nil, err
				}
				id, err := idVar(r, "commentID")
				if err != nil {
					return nil, err
				}
				return nil, e.store.DeleteComment(
					principalID(r.Context()),
					postID,
					id,
				)
			},
			SuccessCode: http.StatusNoContent,
		},
	)
}
